package ai

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.EmbeddingHost == "" || cfg.RecognizerHost == "" {
		t.Fatal("Expected default hosts to be set")
	}
	if cfg.RecognizerMaxInput <= 0 {
		t.Fatal("Expected positive default recognizer input limit")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://example.com:9000"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithRecognizerModel("gpt-4o-mini"),
		WithRecognizerMaxInput(5000),
	)

	if cfg.EmbeddingHost != "http://example.com:9000" {
		t.Fatalf("Unexpected embedding host %q", cfg.EmbeddingHost)
	}
	if cfg.RecognizerHost != "http://example.com:9000" {
		t.Fatalf("Unexpected recognizer host %q", cfg.RecognizerHost)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Fatalf("Unexpected embedding model %q", cfg.EmbeddingModel)
	}
	if cfg.RecognizerMaxInput != 5000 {
		t.Fatalf("Unexpected input limit %d", cfg.RecognizerMaxInput)
	}
}

func TestNormalizeAddsV1Suffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "bare host", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "already suffixed", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			if cfg.EmbeddingHost != tt.want {
				t.Errorf("EmbeddingHost = %q, want %q", cfg.EmbeddingHost, tt.want)
			}
			if cfg.RecognizerHost != tt.want {
				t.Errorf("RecognizerHost = %q, want %q", cfg.RecognizerHost, tt.want)
			}
		})
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := NewConfig(WithEmbeddingModel(""))
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected error for empty embedding model")
	}

	cfg = NewConfig(WithRecognizerMaxInput(-1))
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected error for non-positive input limit")
	}
}

func TestSupportedEntityType(t *testing.T) {
	for _, label := range EntityTypeList {
		if !SupportedEntityType(label) {
			t.Errorf("Expected %q to be supported", label)
		}
	}
	for _, label := range []string{"money", "percent", "PERSON", "cardinal", ""} {
		if SupportedEntityType(label) {
			t.Errorf("Expected %q to be unsupported", label)
		}
	}
}
