package storage

import (
	"context"

	"github.com/poiesic/inquest/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository
	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, generates new IDs from sequence.
	// Sets CreatedAt/UpdatedAt timestamps if not already set.
	// Returns the documents with generated IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// ListDocuments retrieves documents, optionally filtered by status.
	// An empty status matches every document. Results are ordered by ID.
	ListDocuments(ctx context.Context, status core.DocumentStatus, limit int) ([]*core.Document, error)

	// CountDocumentsByStatus returns the number of documents per status.
	CountDocumentsByStatus(ctx context.Context) (map[core.DocumentStatus]int, error)
}

// JobRepository provides operations for the durable processing job queue.
type JobRepository interface {
	Repository
	// AddJobs enqueues one or more processing jobs.
	// For jobs with ID=0, generates new IDs from sequence.
	// Jobs without a status are enqueued as queued.
	// Returns the jobs with generated IDs and timestamps populated.
	AddJobs(ctx context.Context, jobs ...*core.ProcessingJob) ([]*core.ProcessingJob, error)

	// UpdateJobs updates existing jobs, maintaining the queue index.
	// Returns ErrNotFound if any job doesn't exist.
	UpdateJobs(ctx context.Context, jobs ...*core.ProcessingJob) ([]*core.ProcessingJob, error)

	// GetJob retrieves a single job by ID.
	// Returns ErrNotFound if the job doesn't exist.
	GetJob(ctx context.Context, id core.ID) (*core.ProcessingJob, error)

	// ClaimNextPending atomically claims the next queued job: the one with
	// the lowest priority value, ties broken by earliest creation time. The
	// returned job has already been transitioned to running with StartedAt
	// set. Concurrent callers never receive the same job. Returns
	// ErrNotFound when the queue is empty.
	ClaimNextPending(ctx context.Context) (*core.ProcessingJob, error)

	// ListJobsByDocument retrieves all jobs for a document, ordered by ID.
	ListJobsByDocument(ctx context.Context, documentID core.ID) ([]*core.ProcessingJob, error)

	// CountJobsByStatus returns the number of jobs per status.
	CountJobsByStatus(ctx context.Context) (map[core.JobStatus]int, error)
}

// EntityRepository provides operations for managing canonical entities and
// their per-document mentions.
type EntityRepository interface {
	Repository
	// GetEntity retrieves a single entity by ID.
	// Returns ErrNotFound if the entity doesn't exist.
	GetEntity(ctx context.Context, id core.ID) (*core.Entity, error)

	// FindEntityByCanonical finds an entity by its (canonical, type) tuple.
	// Returns ErrNotFound if no matching entity exists.
	FindEntityByCanonical(ctx context.Context, canonical, entityType string) (*core.Entity, error)

	// GetOrCreateEntity finds or creates an entity by canonical name and type.
	// Uses content-based IDs (IDFromContent of the entity tuple).
	// Thread-safe: handles concurrent creation attempts.
	GetOrCreateEntity(ctx context.Context, name, canonical, entityType string) (*core.Entity, error)

	// UpdateEntities updates existing entities.
	// Returns ErrNotFound if any entity doesn't exist.
	UpdateEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error)

	// RecordMentions records a batch of mentions of a single entity within
	// one transaction: the entity is created if absent, its MentionCount is
	// incremented by len(mentions), and one EntityMention row is appended
	// per element. The mentions' EntityId fields are populated.
	RecordMentions(ctx context.Context, name, canonical, entityType string, mentions []*core.EntityMention) (*core.Entity, error)

	// ListMentionsByDocument retrieves all mentions recorded for a document.
	ListMentionsByDocument(ctx context.Context, documentID core.ID) ([]*core.EntityMention, error)

	// ListMentionsByEntity retrieves all mentions of an entity across documents.
	ListMentionsByEntity(ctx context.Context, entityID core.ID) ([]*core.EntityMention, error)
}

// EmbeddingRepository provides operations for managing document chunk embeddings.
type EmbeddingRepository interface {
	Repository
	// ReplaceForDocument deletes every embedding stored for the document and
	// inserts the new set within one transaction. Chunk indices are taken
	// from the supplied rows. Returns the rows with IDs populated.
	ReplaceForDocument(ctx context.Context, documentID core.ID, embeddings []*core.Embedding) ([]*core.Embedding, error)

	// ListEmbeddingsByDocument retrieves a document's embeddings ordered by
	// chunk index.
	ListEmbeddingsByDocument(ctx context.Context, documentID core.ID) ([]*core.Embedding, error)

	// DeleteEmbeddingsByDocument removes every embedding for a document.
	DeleteEmbeddingsByDocument(ctx context.Context, documentID core.ID) error

	// FindSimilarChunks finds stored chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error)
}
