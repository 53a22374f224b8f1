package badger

import (
	"context"
	"testing"

	"github.com/poiesic/inquest/core"
)

func TestReplaceForDocument(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	first := []*core.Embedding{
		{ChunkIndex: 0, ChunkText: "chunk zero", Vector: []float32{1, 0, 0}},
		{ChunkIndex: 1, ChunkText: "chunk one", Vector: []float32{0, 1, 0}},
		{ChunkIndex: 2, ChunkText: "chunk two", Vector: []float32{0, 0, 1}},
	}
	if _, err := repos.Embeddings.ReplaceForDocument(ctx, 7, first); err != nil {
		t.Fatalf("Failed to store embeddings: %v", err)
	}

	stored, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to list embeddings: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("Expected 3 embeddings, got %d", len(stored))
	}
	for i, embedding := range stored {
		if embedding.ChunkIndex != i {
			t.Fatalf("Expected chunk index %d at position %d, got %d", i, i, embedding.ChunkIndex)
		}
		if embedding.DocumentId != 7 {
			t.Fatalf("Expected document 7, got %d", embedding.DocumentId)
		}
	}

	// Re-running replaces the whole set, including the count
	second := []*core.Embedding{
		{ChunkIndex: 0, ChunkText: "new chunk zero", Vector: []float32{0.5, 0.5, 0}},
		{ChunkIndex: 1, ChunkText: "new chunk one", Vector: []float32{0, 0.5, 0.5}},
	}
	if _, err := repos.Embeddings.ReplaceForDocument(ctx, 7, second); err != nil {
		t.Fatalf("Failed to replace embeddings: %v", err)
	}

	replaced, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to list embeddings: %v", err)
	}
	if len(replaced) != 2 {
		t.Fatalf("Expected 2 embeddings after replace, got %d", len(replaced))
	}
	if replaced[0].ChunkText != "new chunk zero" {
		t.Fatalf("Expected replaced text, got %q", replaced[0].ChunkText)
	}

	// Another document is untouched
	other := []*core.Embedding{
		{ChunkIndex: 0, ChunkText: "other doc", Vector: []float32{1, 1, 1}},
	}
	if _, err := repos.Embeddings.ReplaceForDocument(ctx, 8, other); err != nil {
		t.Fatalf("Failed to store embeddings: %v", err)
	}
	if _, err := repos.Embeddings.ReplaceForDocument(ctx, 7, second); err != nil {
		t.Fatalf("Failed to replace embeddings: %v", err)
	}
	otherStored, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, 8)
	if err != nil {
		t.Fatalf("Failed to list embeddings: %v", err)
	}
	if len(otherStored) != 1 {
		t.Fatalf("Expected document 8 to keep its embedding, got %d", len(otherStored))
	}
}

func TestDeleteEmbeddingsByDocument(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	rows := []*core.Embedding{
		{ChunkIndex: 0, ChunkText: "a", Vector: []float32{1}},
		{ChunkIndex: 1, ChunkText: "b", Vector: []float32{2}},
	}
	if _, err := repos.Embeddings.ReplaceForDocument(ctx, 3, rows); err != nil {
		t.Fatalf("Failed to store embeddings: %v", err)
	}

	if err := repos.Embeddings.DeleteEmbeddingsByDocument(ctx, 3); err != nil {
		t.Fatalf("Failed to delete embeddings: %v", err)
	}

	remaining, err := repos.Embeddings.ListEmbeddingsByDocument(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to list embeddings: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Expected no embeddings, got %d", len(remaining))
	}
}

func TestFindSimilarChunks(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	rows := []*core.Embedding{
		{ChunkIndex: 0, ChunkText: "exact match", Vector: []float32{1, 0, 0}},
		{ChunkIndex: 1, ChunkText: "partial match", Vector: []float32{0.7, 0.7, 0}},
		{ChunkIndex: 2, ChunkText: "orthogonal", Vector: []float32{0, 0, 1}},
	}
	if _, err := repos.Embeddings.ReplaceForDocument(ctx, 1, rows); err != nil {
		t.Fatalf("Failed to store embeddings: %v", err)
	}

	matches, err := repos.Embeddings.FindSimilarChunks(ctx, []float32{1, 0, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Embedding.ChunkText != "exact match" {
		t.Fatalf("Expected best match first, got %q", matches[0].Embedding.ChunkText)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("Expected descending score order")
	}
}
