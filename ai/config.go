// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// RecognizerHost is the base URL for the entity recognition service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	RecognizerHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// RecognizerModel is the model identifier to use for entity recognition.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	RecognizerModel string

	// RecognizerMaxInput is the maximum text length, in runes, submitted to
	// the recognizer per call. Longer texts are segmented by the pipeline.
	// Default: 100000
	RecognizerMaxInput int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithRecognizerHost sets the recognizer service host URL.
func WithRecognizerHost(host string) ConfigOption {
	return func(c *Config) {
		c.RecognizerHost = host
	}
}

// WithHost sets both embedding and recognizer hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.RecognizerHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithRecognizerModel sets the recognizer model identifier.
func WithRecognizerModel(model string) ConfigOption {
	return func(c *Config) {
		c.RecognizerModel = model
	}
}

// WithRecognizerMaxInput sets the per-call input limit for the recognizer.
func WithRecognizerMaxInput(limit int) ConfigOption {
	return func(c *Config) {
		c.RecognizerMaxInput = limit
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and recognizer use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:      defaultHost,
		RecognizerHost:     defaultHost,
		EmbeddingModel:     "embeddinggemma",
		RecognizerModel:    "qwen2.5:3b",
		RecognizerMaxInput: 100000,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.RecognizerHost != "" && !strings.HasSuffix(c.RecognizerHost, "/v1") {
		c.RecognizerHost = strings.TrimSuffix(c.RecognizerHost, "/")
		c.RecognizerHost = c.RecognizerHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.RecognizerHost == "" {
		return errors.New("ai config: RecognizerHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.RecognizerModel == "" {
		return errors.New("ai config: RecognizerModel is required")
	}
	if c.RecognizerMaxInput <= 0 {
		return errors.New("ai config: RecognizerMaxInput must be positive")
	}
	return nil
}
