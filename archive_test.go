package inquest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/inquest/ai/mock"
	"github.com/poiesic/inquest/core"
)

func TestOpenArchive(t *testing.T) {
	t.Run("create new archive", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		archive, err := OpenArchive(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, archive)
		defer archive.Close()

		assert.NotNil(t, archive.DocumentRepository())
		assert.NotNil(t, archive.JobRepository())
		assert.NotNil(t, archive.EntityRepository())
		assert.NotNil(t, archive.EmbeddingRepository())
		assert.NotNil(t, archive.Provider())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		archive, err := OpenArchive(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, archive)
	})
}

func TestArchive_Close(t *testing.T) {
	archive, err := OpenArchive(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	err = archive.Close()
	assert.NoError(t, err)
}

func TestArchive_FactoryMethods(t *testing.T) {
	archive, err := OpenArchive(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer archive.Close()

	pipe, err := archive.NewPipeline()
	require.NoError(t, err)
	require.NotNil(t, pipe)

	worker, err := archive.NewWorker(pipe)
	require.NoError(t, err)
	require.NotNil(t, worker)

	importer, err := archive.NewImporter()
	require.NoError(t, err)
	require.NotNil(t, importer)

	searcher, err := archive.NewSearcher()
	require.NoError(t, err)
	require.NotNil(t, searcher)

	reprocessor, err := archive.NewReprocessor(nil, os.Stderr)
	require.NoError(t, err)
	require.NotNil(t, reprocessor)
}

func TestArchive_EndToEnd(t *testing.T) {
	archive, err := OpenArchive(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer archive.Close()

	ctx := context.Background()
	docs, err := archive.DocumentRepository().AddDocuments(ctx, &core.Document{
		Source:     "doj",
		SourcePath: "/data/doj/report.txt",
		Filename:   "report.txt",
		DocType:    "text",
	})
	require.NoError(t, err)

	counts, err := archive.DocumentRepository().CountDocumentsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[core.DocumentPending])

	_, err = archive.JobRepository().AddJobs(ctx, &core.ProcessingJob{
		DocumentId: docs[0].Id,
		Kind:       core.JobExtractText,
		Priority:   5,
	})
	require.NoError(t, err)

	jobCounts, err := archive.JobRepository().CountJobsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, jobCounts[core.JobQueued])
}
