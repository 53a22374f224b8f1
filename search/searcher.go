package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/inquest/ai"
	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/storage"
)

// DefaultMinSimilarity is the cosine similarity floor for results.
const DefaultMinSimilarity = 0.60

// Result is a single search hit: a matching chunk, the document it
// belongs to, and the similarity score.
type Result struct {
	Document *core.Document
	Chunk    *core.Embedding
	Score    float32
}

// Searcher provides semantic search over embedded document chunks.
type Searcher struct {
	documents     storage.DocumentRepository
	embeddings    storage.EmbeddingRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithMinSimilarity sets the similarity floor for results.
// Default is DefaultMinSimilarity.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	documents storage.DocumentRepository,
	embeddings storage.EmbeddingRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		documents:     documents,
		embeddings:    embeddings,
		embedder:      provider.Embedder(),
		minSimilarity: DefaultMinSimilarity,
		logger:        slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for document chunks similar to the query.
// Returns up to maxHits results ranked by similarity score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.embeddings.FindSimilarChunks(ctx, vector, s.minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	// Fetch the owning documents in one round trip
	docIDs := make([]core.ID, 0, len(matches))
	seen := make(map[core.ID]bool)
	for _, match := range matches {
		if !seen[match.Embedding.DocumentId] {
			seen[match.Embedding.DocumentId] = true
			docIDs = append(docIDs, match.Embedding.DocumentId)
		}
	}
	docs, err := s.documents.GetDocuments(ctx, docIDs...)
	if err != nil {
		s.logger.Error("error loading matched documents", "err", err)
		return nil, err
	}
	docsByID := make(map[core.ID]*core.Document, len(docs))
	for _, doc := range docs {
		docsByID[doc.Id] = doc
	}

	results := make([]*Result, 0, len(matches))
	for _, match := range matches {
		doc, ok := docsByID[match.Embedding.DocumentId]
		if !ok {
			// Orphaned embedding row; skip rather than fail the search
			s.logger.Warn("chunk references missing document",
				"chunk", match.Embedding.Id, "document", match.Embedding.DocumentId)
			continue
		}
		results = append(results, &Result{
			Document: doc,
			Chunk:    match.Embedding,
			Score:    match.Score,
		})
	}
	return results, nil
}
