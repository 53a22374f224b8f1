package reprocess

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/pipeline"
	badgerstore "github.com/poiesic/inquest/storage/badger"
)

func setupRepos(t *testing.T) *badgerstore.MemoryRepositories {
	t.Helper()
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func addDoc(t *testing.T, repos *badgerstore.MemoryRepositories, status core.DocumentStatus) *core.Document {
	t.Helper()
	docs, err := repos.Documents.AddDocuments(context.Background(), &core.Document{
		Source:     "doj",
		SourcePath: "/data/doj/file.pdf",
		Filename:   "file.pdf",
		DocType:    "pdf",
		Status:     status,
	})
	require.NoError(t, err)
	return docs[0]
}

func TestReprocessorRun(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	extracted := addDoc(t, repos, core.DocumentTextExtracted)
	addDoc(t, repos, core.DocumentPending)

	var out bytes.Buffer
	r, err := NewReprocessor(repos.Documents, repos.Jobs, nil, &out)
	require.NoError(t, err)

	// Only the text_extracted document gets re-enqueued
	count, err := r.Run(ctx, core.DocumentTextExtracted, []core.JobKind{core.JobNER, core.JobEmbed})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	jobs, err := repos.Jobs.ListJobsByDocument(ctx, extracted.Id)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	kinds := map[core.JobKind]int{}
	for _, job := range jobs {
		assert.Equal(t, core.JobQueued, job.Status)
		kinds[job.Kind] = job.Priority
	}
	assert.Equal(t, pipeline.PriorityNER, kinds[core.JobNER])
	assert.Equal(t, pipeline.PriorityEmbed, kinds[core.JobEmbed])

	assert.Contains(t, out.String(), "Reprocessing complete")
}

func TestReprocessorRunAllStatuses(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	addDoc(t, repos, core.DocumentPending)
	addDoc(t, repos, core.DocumentFailed)

	var out bytes.Buffer
	r, err := NewReprocessor(repos.Documents, repos.Jobs, nil, &out)
	require.NoError(t, err)

	count, err := r.Run(ctx, "", []core.JobKind{core.JobExtractText})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	counts, err := repos.Jobs.CountJobsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[core.JobQueued])
}

func TestReprocessorRunEmpty(t *testing.T) {
	repos := setupRepos(t)

	var out bytes.Buffer
	r, err := NewReprocessor(repos.Documents, repos.Jobs, nil, &out)
	require.NoError(t, err)

	count, err := r.Run(context.Background(), core.DocumentFailed, []core.JobKind{core.JobExtractText})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, out.String(), "No documents")
}

func TestReprocessorRunValidation(t *testing.T) {
	repos := setupRepos(t)

	var out bytes.Buffer
	r, err := NewReprocessor(repos.Documents, repos.Jobs, nil, &out)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrNoJobKinds)

	_, err = r.Run(context.Background(), "", []core.JobKind{"transcode_audio"})
	assert.Error(t, err)
}

func TestRetryWithBackoff(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return assert.AnError
		}
		return nil
	}, 5, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffExhausted(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return assert.AnError
	}, 3, time.Millisecond)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffInvalidAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RetryWithBackoff(ctx, func() error {
		attempts++
		cancel()
		return assert.AnError
	}, 5, 10*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
