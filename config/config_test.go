package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Embedding.Dimension != 384 {
		t.Errorf("Expected dimension 384, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Chunking.Size != 512 || cfg.Chunking.Overlap != 64 {
		t.Errorf("Unexpected chunking defaults: %+v", cfg.Chunking)
	}
	if cfg.Workers.Count != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Workers.Count)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.DBPath != "inquest.db" {
		t.Errorf("Expected default db path, got %q", cfg.DBPath)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: /var/lib/inquest/archive.db
embedding:
  model: nomic-embed-text
  dimension: 768
workers:
  count: 8
  idle_delay: 2s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/var/lib/inquest/archive.db" {
		t.Errorf("db_path not overridden: %q", cfg.DBPath)
	}
	if cfg.Embedding.Model != "nomic-embed-text" || cfg.Embedding.Dimension != 768 {
		t.Errorf("embedding not overridden: %+v", cfg.Embedding)
	}
	if cfg.Workers.Count != 8 || cfg.Workers.IdleDelay.Std() != 2*time.Second {
		t.Errorf("workers not overridden: %+v", cfg.Workers)
	}

	// Untouched sections keep their defaults
	if cfg.Recognizer.Model != "qwen2.5:3b" {
		t.Errorf("recognizer default lost: %+v", cfg.Recognizer)
	}
	if cfg.Chunking.Size != 512 {
		t.Errorf("chunking default lost: %+v", cfg.Chunking)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad dimension", content: "embedding:\n  dimension: -1\n"},
		{name: "overlap too large", content: "chunking:\n  size: 10\n  overlap: 10\n"},
		{name: "zero workers", content: "workers:\n  count: 0\n"},
		{name: "malformed yaml", content: "db_path: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected Load to fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected Load to fail for missing file")
	}
}
