// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.EntityRecognizer,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vectors, err := mockProvider.Embedder().EmbedTexts(ctx, chunks)
//
//	// Custom behavior injection
//	mockRecognizer := mock.NewMockEntityRecognizer()
//	mockRecognizer.RecognizeFunc = func(ctx context.Context, text string) ([]ai.RecognizedEntity, error) {
//	    return []ai.RecognizedEntity{{Text: "Jane Doe", Label: "person", Start: 0, End: 8, Confidence: 1.0}}, nil
//	}
//
//	// Check call counts
//	count := mockRecognizer.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockEntityRecognizer: Tags runs of capitalized words as person entities
//   - MockProvider: Aggregates mock embedder and recognizer
package mock
