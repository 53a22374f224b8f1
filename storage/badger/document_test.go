package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/storage"
)

func TestDocumentBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	doc := &core.Document{
		Source:     "doj",
		SourcePath: "doj/releases/report.pdf",
		Filename:   "report.pdf",
		DocType:    "pdf",
	}

	added, err := repos.Documents.AddDocuments(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].Status != core.DocumentPending {
		t.Fatalf("Expected pending status, got %q", added[0].Status)
	}

	retrieved, err := repos.Documents.GetDocument(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.SourcePath != "doj/releases/report.pdf" {
		t.Fatalf("Unexpected source path %q", retrieved.SourcePath)
	}

	_, err = repos.Documents.GetDocument(ctx, 999999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentUpdate(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	doc := &core.Document{SourcePath: "fbi/vault/file.pdf", DocType: "pdf"}
	if _, err := repos.Documents.AddDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	doc.ExtractedText = "extracted contents"
	doc.PageCount = 3
	doc.Status = core.DocumentTextExtracted
	if _, err := repos.Documents.UpdateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to update document: %v", err)
	}

	retrieved, err := repos.Documents.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Status != core.DocumentTextExtracted {
		t.Fatalf("Expected text_extracted, got %q", retrieved.Status)
	}
	if retrieved.PageCount != 3 {
		t.Fatalf("Expected 3 pages, got %d", retrieved.PageCount)
	}

	missing := &core.Document{Id: 424242, SourcePath: "x"}
	if _, err := repos.Documents.UpdateDocuments(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListAndCountDocuments(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	docs := []*core.Document{
		{SourcePath: "a.pdf", Status: core.DocumentPending},
		{SourcePath: "b.pdf", Status: core.DocumentPending},
		{SourcePath: "c.pdf", Status: core.DocumentTextExtracted},
	}
	if _, err := repos.Documents.AddDocuments(ctx, docs...); err != nil {
		t.Fatalf("Failed to add documents: %v", err)
	}

	pending, err := repos.Documents.ListDocuments(ctx, core.DocumentPending, 0)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("Expected 2 pending documents, got %d", len(pending))
	}

	all, err := repos.Documents.ListDocuments(ctx, "", 0)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Id > all[i].Id {
			t.Fatal("Expected documents ordered by ID")
		}
	}

	counts, err := repos.Documents.CountDocumentsByStatus(ctx)
	if err != nil {
		t.Fatalf("Failed to count documents: %v", err)
	}
	if counts[core.DocumentPending] != 2 || counts[core.DocumentTextExtracted] != 1 {
		t.Fatalf("Unexpected counts: %v", counts)
	}
}
