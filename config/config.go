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

// Package config loads the archive's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDimension is returned when the embedding dimension is not positive.
	ErrInvalidDimension = errors.New("embedding dimension must be positive")

	// ErrInvalidChunking is returned when chunk size/overlap are inconsistent.
	ErrInvalidChunking = errors.New("chunk overlap must be non-negative and smaller than chunk size")

	// ErrInvalidWorkerCount is returned when the worker count is not positive.
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
)

// EmbeddingConfig configures the embedding model endpoint.
type EmbeddingConfig struct {
	Host      string `yaml:"host"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// RecognizerConfig configures the entity recognition model endpoint.
type RecognizerConfig struct {
	Host     string `yaml:"host"`
	Model    string `yaml:"model"`
	MaxInput int    `yaml:"max_input"` // in runes
}

// ChunkingConfig configures embedding chunk geometry, in words.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// Duration wraps time.Duration so YAML values like "5s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// WorkerConfig configures the worker pool.
type WorkerConfig struct {
	Count      int      `yaml:"count"`
	IdleDelay  Duration `yaml:"idle_delay"`
	ErrorDelay Duration `yaml:"error_delay"`
}

// Config is the root configuration for the archive and its workers.
type Config struct {
	DBPath     string           `yaml:"db_path"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Workers    WorkerConfig     `yaml:"workers"`
}

// Default returns a Config with working local defaults.
func Default() *Config {
	return &Config{
		DBPath: "inquest.db",
		Embedding: EmbeddingConfig{
			Host:      "http://localhost:11434/v1",
			Model:     "embeddinggemma",
			Dimension: 384,
		},
		Recognizer: RecognizerConfig{
			Host:     "http://localhost:11434/v1",
			Model:    "qwen2.5:3b",
			MaxInput: 100000,
		},
		Chunking: ChunkingConfig{
			Size:    512,
			Overlap: 64,
		},
		Workers: WorkerConfig{
			Count:      4,
			IdleDelay:  Duration(5 * time.Second),
			ErrorDelay: Duration(10 * time.Second),
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Embedding.Dimension <= 0 {
		return ErrInvalidDimension
	}
	if c.Chunking.Size <= 0 || c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return ErrInvalidChunking
	}
	if c.Workers.Count <= 0 {
		return ErrInvalidWorkerCount
	}
	return nil
}
