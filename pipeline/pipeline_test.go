// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/inquest/ai"
	"github.com/poiesic/inquest/ai/mock"
	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/pdf"
	"github.com/poiesic/inquest/storage"
	badgerstore "github.com/poiesic/inquest/storage/badger"
)

// stubParser is a canned pdf.Parser for stage tests.
type stubParser struct {
	pages    []string
	geometry []pdf.PageGeometry
	pagesErr error
	geomErr  error
}

func (s *stubParser) ExtractPages(path string) ([]string, error) {
	if s.pagesErr != nil {
		return nil, s.pagesErr
	}
	return s.pages, nil
}

func (s *stubParser) Geometry(path string) ([]pdf.PageGeometry, error) {
	if s.geomErr != nil {
		return nil, s.geomErr
	}
	return s.geometry, nil
}

func newTestPipeline(t *testing.T, parser pdf.Parser) (*Pipeline, *badgerstore.MemoryRepositories, *mock.MockProvider) {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	p, err := NewPipeline(repos.Documents, repos.Jobs, repos.Entities, repos.Embeddings, provider, parser)
	require.NoError(t, err)
	return p, repos, provider
}

func addTestDocument(t *testing.T, repos *badgerstore.MemoryRepositories, doc *core.Document) *core.Document {
	t.Helper()
	if doc.Source == "" {
		doc.Source = "doj"
	}
	if doc.SourcePath == "" {
		doc.SourcePath = "/data/doj/report.pdf"
	}
	if doc.Filename == "" {
		doc.Filename = "report.pdf"
	}
	if doc.DocType == "" {
		doc.DocType = "pdf"
	}
	docs, err := repos.Documents.AddDocuments(context.Background(), doc)
	require.NoError(t, err)
	return docs[0]
}

func TestExtractTextStage(t *testing.T) {
	page1 := strings.Repeat("the quick brown fox jumps over the lazy dog ", 3)
	page2 := strings.Repeat("pack my box with five dozen liquor jugs ", 3)
	parser := &stubParser{pages: []string{page1, "", page2}}

	p, repos, _ := newTestPipeline(t, parser)
	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})

	require.NoError(t, p.ExtractText(ctx, doc.Id))

	got, err := repos.Documents.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, core.DocumentTextExtracted, got.Status)
	assert.Equal(t, 3, got.PageCount)
	assert.False(t, got.NeedsOCR)

	// Empty pages are dropped from the join, so there is one break
	assert.Equal(t, 1, strings.Count(got.ExtractedText, "--- PAGE BREAK ---"))
	assert.Contains(t, got.ExtractedText, "quick brown fox")
	assert.Contains(t, got.ExtractedText, "liquor jugs")

	// Downstream stages fan out from a successful extraction
	jobs, err := repos.Jobs.ListJobsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	kinds := map[core.JobKind]int{}
	for _, job := range jobs {
		kinds[job.Kind] = job.Priority
		assert.Equal(t, core.JobQueued, job.Status)
	}
	assert.Equal(t, PriorityNER, kinds[core.JobNER])
	assert.Equal(t, PriorityEmbed, kinds[core.JobEmbed])
}

func TestExtractTextFlagsOCR(t *testing.T) {
	parser := &stubParser{pages: []string{"a", "b", ""}}
	p, repos, _ := newTestPipeline(t, parser)
	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})

	require.NoError(t, p.ExtractText(ctx, doc.Id))

	got, err := repos.Documents.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.True(t, got.NeedsOCR)
	assert.Equal(t, core.DocumentTextExtracted, got.Status)
}

func TestExtractTextFailureMarksDocument(t *testing.T) {
	parser := &stubParser{pagesErr: errors.New("broken xref table")}
	p, repos, _ := newTestPipeline(t, parser)
	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})

	err := p.ExtractText(ctx, doc.Id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken xref table")

	got, err := repos.Documents.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, core.DocumentFailed, got.Status)

	// No downstream jobs on failure
	jobs, err := repos.Jobs.ListJobsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestDetectRedactionStage(t *testing.T) {
	parser := &stubParser{geometry: []pdf.PageGeometry{
		{
			Page: 1, Width: 100, Height: 100,
			Rects: []pdf.FilledRect{
				{X: 10, Y: 10, Width: 20, Height: 20, R: 0, G: 0, B: 0},   // redaction
				{X: 40, Y: 40, Width: 30, Height: 30, R: 1, G: 1, B: 1},   // white box
				{X: 5, Y: 5, Width: 5, Height: 5, R: 0, G: 0, B: 0},       // too small
				{X: 50, Y: 50, Width: 20, Height: 20, R: 0.05, G: 0.05, B: 0.05}, // gray redaction
			},
		},
		{Page: 2, Width: 100, Height: 100},
	}}

	p, repos, _ := newTestPipeline(t, parser)
	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})

	require.NoError(t, p.DetectRedaction(ctx, doc.Id))

	got, err := repos.Documents.GetDocument(ctx, doc.Id)
	require.NoError(t, err)

	// 800 redacted points over 20000 total page area
	assert.InDelta(t, 0.04, got.RedactionScore, 1e-9)
	detail := got.RedactionDetail
	assert.Equal(t, 2, detail.TotalPages)
	assert.Equal(t, 1, detail.PagesWithRedactions)

	// Every page gets a detail row, redacted or not
	require.Len(t, detail.Pages, 2)
	assert.Equal(t, 1, detail.Pages[0].Page)
	assert.InDelta(t, 0.08, detail.Pages[0].Score, 1e-9)
	assert.Equal(t, 2, detail.Pages[0].RedactionCount)
	assert.Len(t, detail.Pages[0].Rects, 2)
	assert.Equal(t, 2, detail.Pages[1].Page)
	assert.Zero(t, detail.Pages[1].Score)
	assert.Zero(t, detail.Pages[1].RedactionCount)
	assert.Empty(t, detail.Pages[1].Rects)
}

func TestAnalyzeRedactionsNoPages(t *testing.T) {
	detail := analyzeRedactions(nil)
	assert.Zero(t, detail.Score)
	assert.Zero(t, detail.TotalPages)
	assert.Empty(t, detail.Pages)
}

func TestAnalyzeRedactionsRectCap(t *testing.T) {
	page := pdf.PageGeometry{Page: 1, Width: 1000, Height: 1000}
	for i := 0; i < 30; i++ {
		page.Rects = append(page.Rects, pdf.FilledRect{
			X: float64(i) * 20, Y: 0, Width: 15, Height: 15,
		})
	}

	detail := analyzeRedactions([]pdf.PageGeometry{page})
	require.Len(t, detail.Pages, 1)
	assert.Equal(t, 30, detail.Pages[0].RedactionCount)
	assert.Len(t, detail.Pages[0].Rects, maxRectsPerPage)
}

func TestExtractEntitiesStage(t *testing.T) {
	text := "Jane Doe met John Smith in Paris. Jane Doe testified."
	p, repos, provider := newTestPipeline(t, &stubParser{})
	ctx := context.Background()

	doc := addTestDocument(t, repos, &core.Document{})
	doc.ExtractedText = text
	doc.Status = core.DocumentTextExtracted
	_, err := repos.Documents.UpdateDocuments(ctx, doc)
	require.NoError(t, err)

	provider.GetMockRecognizer().RecognizeFunc = func(ctx context.Context, input string) ([]ai.RecognizedEntity, error) {
		return []ai.RecognizedEntity{
			{Text: "Jane Doe", Label: "person", Start: 0, End: 8, Confidence: 1.0},
			{Text: "John Smith", Label: "person", Start: 13, End: 23, Confidence: 1.0},
			{Text: "Paris", Label: "gpe", Start: 27, End: 32, Confidence: 1.0},
			{Text: "Jane Doe", Label: "person", Start: 34, End: 42, Confidence: 1.0},
			{Text: "42", Label: "cardinal", Start: 0, End: 2, Confidence: 1.0}, // unsupported label
			{Text: "J.", Label: "person", Start: 0, End: 2, Confidence: 1.0},  // too short after cleanup
		}, nil
	}

	require.NoError(t, p.ExtractEntities(ctx, doc.Id))

	// Both Jane Doe spans land on one canonical entity
	jane, err := repos.Entities.FindEntityByCanonical(ctx, "Jane Doe", "person")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", jane.Name)
	assert.Equal(t, "Jane Doe", jane.Canonical)
	assert.Equal(t, 2, jane.MentionCount)

	paris, err := repos.Entities.FindEntityByCanonical(ctx, "Paris", "gpe")
	require.NoError(t, err)
	assert.Equal(t, 1, paris.MentionCount)

	mentions, err := repos.Entities.ListMentionsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Len(t, mentions, 4)
	for _, m := range mentions {
		assert.Equal(t, 1.0, m.Confidence)
	}

	janeMentions, err := repos.Entities.ListMentionsByEntity(ctx, jane.Id)
	require.NoError(t, err)
	require.Len(t, janeMentions, 2)
	offsets := []int{janeMentions[0].CharOffset, janeMentions[1].CharOffset}
	assert.ElementsMatch(t, []int{0, 34}, offsets)
	for _, m := range janeMentions {
		assert.Contains(t, m.Context, "Jane Doe")
	}
}

func TestExtractEntitiesPreservesCase(t *testing.T) {
	text := "IBM filed suit, and ibm was named as well."
	p, repos, provider := newTestPipeline(t, &stubParser{})
	ctx := context.Background()

	doc := addTestDocument(t, repos, &core.Document{})
	doc.ExtractedText = text
	doc.Status = core.DocumentTextExtracted
	_, err := repos.Documents.UpdateDocuments(ctx, doc)
	require.NoError(t, err)

	provider.GetMockRecognizer().RecognizeFunc = func(ctx context.Context, input string) ([]ai.RecognizedEntity, error) {
		return []ai.RecognizedEntity{
			{Text: "IBM", Label: "org", Start: 0, End: 3, Confidence: 1.0},
			{Text: "ibm", Label: "org", Start: 20, End: 23, Confidence: 1.0},
		}, nil
	}

	require.NoError(t, p.ExtractEntities(ctx, doc.Id))

	// Differently-cased surface forms stay separate entities
	upper, err := repos.Entities.FindEntityByCanonical(ctx, "IBM", "org")
	require.NoError(t, err)
	assert.Equal(t, "IBM", upper.Canonical)
	assert.Equal(t, 1, upper.MentionCount)

	lower, err := repos.Entities.FindEntityByCanonical(ctx, "ibm", "org")
	require.NoError(t, err)
	assert.Equal(t, "ibm", lower.Canonical)
	assert.Equal(t, 1, lower.MentionCount)

	assert.NotEqual(t, upper.Id, lower.Id)
}

func TestExtractEntitiesSkipsEmptyText(t *testing.T) {
	p, repos, provider := newTestPipeline(t, &stubParser{})
	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})

	require.NoError(t, p.ExtractEntities(ctx, doc.Id))
	assert.Zero(t, provider.GetMockRecognizer().CallCount())
}

func TestExtractEntitiesSegmentOffsets(t *testing.T) {
	// Force segmentation so offsets have to be shifted back to document
	// coordinates.
	p, repos, provider := newTestPipeline(t, &stubParser{})
	ctx := context.Background()

	doc := addTestDocument(t, repos, &core.Document{})
	doc.ExtractedText = strings.Repeat("x", 100) + "Jane Doe" + strings.Repeat("y", 100)
	doc.Status = core.DocumentTextExtracted
	_, err := repos.Documents.UpdateDocuments(ctx, doc)
	require.NoError(t, err)

	recognizer := provider.GetMockRecognizer()
	recognizer.MaxInput = 120
	recognizer.RecognizeFunc = func(ctx context.Context, input string) ([]ai.RecognizedEntity, error) {
		idx := strings.Index(input, "Jane Doe")
		if idx < 0 {
			return nil, nil
		}
		return []ai.RecognizedEntity{
			{Text: "Jane Doe", Label: "person", Start: idx, End: idx + 8, Confidence: 1.0},
		}, nil
	}

	require.NoError(t, p.ExtractEntities(ctx, doc.Id))

	mentions, err := repos.Entities.ListMentionsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, 100, mentions[0].CharOffset)
}

func TestNormalizeEntityName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane Doe  ", "Jane Doe"},
		{"(Department of Justice)", "Department of Justice"},
		{"Smith,", "Smith"},
		{"Jane   \t Doe", "Jane Doe"},
		{"J", ""},
		{"..", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeEntityName(tt.in), "input %q", tt.in)
	}
}

func TestGenerateEmbeddingsStage(t *testing.T) {
	p, repos, _ := newTestPipeline(t, &stubParser{})
	ctx := context.Background()

	doc := addTestDocument(t, repos, &core.Document{})
	doc.ExtractedText = strings.Repeat("evidence exhibit testimony ", 20)
	doc.Status = core.DocumentTextExtracted
	_, err := repos.Documents.UpdateDocuments(ctx, doc)
	require.NoError(t, err)

	require.NoError(t, p.GenerateEmbeddings(ctx, doc.Id))

	rows, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].ChunkIndex)
	assert.Len(t, rows[0].Vector, 384)
	assert.Contains(t, rows[0].ChunkText, "evidence exhibit")

	// A second run replaces the stored set
	doc.ExtractedText = "completely different text now"
	_, err = repos.Documents.UpdateDocuments(ctx, doc)
	require.NoError(t, err)
	require.NoError(t, p.GenerateEmbeddings(ctx, doc.Id))

	rows, err = repos.Embeddings.ListEmbeddingsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "completely different text now", rows[0].ChunkText)
}

func TestGenerateEmbeddingsSkipsEmptyText(t *testing.T) {
	p, repos, provider := newTestPipeline(t, &stubParser{})
	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})

	require.NoError(t, p.GenerateEmbeddings(ctx, doc.Id))
	assert.Zero(t, provider.GetMockEmbedder().CallCount())

	rows, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerateEmbeddingsCountMismatch(t *testing.T) {
	p, repos, provider := newTestPipeline(t, &stubParser{})
	ctx := context.Background()

	doc := addTestDocument(t, repos, &core.Document{})
	doc.ExtractedText = "some words to embed"
	_, err := repos.Documents.UpdateDocuments(ctx, doc)
	require.NoError(t, err)

	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, nil
	}

	err = p.GenerateEmbeddings(ctx, doc.Id)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}

func TestWorkerProcessesJobChain(t *testing.T) {
	page := strings.Repeat("the defendant appeared before the court ", 3)
	parser := &stubParser{pages: []string{page}}

	p, repos, _ := newTestPipeline(t, parser)
	w, err := NewWorker(p, repos.Jobs)
	require.NoError(t, err)

	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})
	_, err = repos.Jobs.AddJobs(ctx, &core.ProcessingJob{
		DocumentId: doc.Id,
		Kind:       core.JobExtractText,
		Priority:   PriorityExtract,
	})
	require.NoError(t, err)

	// Extraction enqueues ner and embed, so three jobs process in order
	require.NoError(t, w.ProcessOne(ctx))
	require.NoError(t, w.ProcessOne(ctx))
	require.NoError(t, w.ProcessOne(ctx))
	assert.ErrorIs(t, w.ProcessOne(ctx), storage.ErrNotFound)

	jobs, err := repos.Jobs.ListJobsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	for _, job := range jobs {
		assert.Equal(t, core.JobCompleted, job.Status, "job kind %s", job.Kind)
		assert.Empty(t, job.Error)
		assert.False(t, job.CompletedAt.IsZero())
	}

	got, err := repos.Documents.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, core.DocumentTextExtracted, got.Status)

	rows, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}

func TestWorkerRecordsFailure(t *testing.T) {
	parser := &stubParser{pagesErr: errors.New(strings.Repeat("very long failure detail ", 40))}
	p, repos, _ := newTestPipeline(t, parser)
	w, err := NewWorker(p, repos.Jobs)
	require.NoError(t, err)

	ctx := context.Background()
	doc := addTestDocument(t, repos, &core.Document{})
	_, err = repos.Jobs.AddJobs(ctx, &core.ProcessingJob{
		DocumentId: doc.Id,
		Kind:       core.JobExtractText,
		Priority:   PriorityExtract,
	})
	require.NoError(t, err)

	// A failing job is recorded, not returned
	require.NoError(t, w.ProcessOne(ctx))

	jobs, err := repos.Jobs.ListJobsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, core.JobFailed, jobs[0].Status)
	assert.NotEmpty(t, jobs[0].Error)
	assert.LessOrEqual(t, len(jobs[0].Error), maxErrorLen)
}

func TestWorkerDispatchUnknownKind(t *testing.T) {
	p, repos, _ := newTestPipeline(t, &stubParser{})
	w, err := NewWorker(p, repos.Jobs)
	require.NoError(t, err)

	err = w.dispatch(context.Background(), &core.ProcessingJob{Kind: "transcode_audio"})
	assert.ErrorIs(t, err, ErrUnknownJobKind)
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	p, repos, _ := newTestPipeline(t, &stubParser{})
	w, err := NewWorker(p, repos.Jobs, WithIdleDelay(time.Millisecond), WithErrorDelay(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Worker did not stop after cancel")
	}
}
