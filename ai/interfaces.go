package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EntityRecognizer identifies named entities in text.
// Implementations must be thread-safe for concurrent use.
type EntityRecognizer interface {
	// MaxInputLength returns the maximum text length, in runes, the
	// recognizer accepts per call. Longer documents must be segmented
	// by the caller.
	MaxInputLength() int

	// Recognize analyzes text and returns the named entities found in it,
	// with rune offsets into the supplied text.
	// Returns an empty slice if no entities are found.
	// Returns an error if recognition fails.
	Recognize(ctx context.Context, text string) ([]RecognizedEntity, error)
}

// RecognizedEntity represents a named entity identified in text.
type RecognizedEntity struct {
	// Text is the entity as it appears in the input.
	// Example: "Jane Doe", "Department of Justice"
	Text string

	// Label categorizes the entity (e.g., "person", "org", "gpe").
	// Labels outside the supported set are discarded downstream.
	Label string

	// Start is the rune offset of the entity within the input text.
	Start int

	// End is the rune offset just past the entity within the input text.
	End int

	// Confidence is the recognizer's confidence in [0, 1].
	Confidence float64
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and EntityRecognizer instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// EntityRecognizer returns the entity recognition service.
	// The returned EntityRecognizer is safe for concurrent use.
	EntityRecognizer() EntityRecognizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
