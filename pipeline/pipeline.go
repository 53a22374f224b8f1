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

// Package pipeline implements the document processing stages: text
// extraction, redaction analysis, entity extraction, and embedding
// generation. Stages are dispatched from the durable job queue by
// Worker; each stage is an idempotent method on Pipeline.
package pipeline

import (
	"log/slog"

	"github.com/poiesic/inquest/ai"
	"github.com/poiesic/inquest/pdf"
	"github.com/poiesic/inquest/storage"
)

// Job priorities. Lower values are claimed first, so the early stages of
// a document run before fan-out work queued behind them.
const (
	PriorityExtract   = 5
	PriorityRedaction = 6
	PriorityNER       = 7
	PriorityEmbed     = 8
)

const (
	// pageBreak joins per-page text into a single document string.
	pageBreak = "\n\n--- PAGE BREAK ---\n\n"

	// minCharsPerPage is the extracted-text density below which a
	// document is flagged as needing OCR.
	minCharsPerPage = 50

	// contextWindow is the number of runes kept on each side of an
	// entity mention.
	contextWindow = 50
)

// Pipeline executes processing stages against the repositories and
// model providers it was built with.
type Pipeline struct {
	documents  storage.DocumentRepository
	jobs       storage.JobRepository
	entities   storage.EntityRepository
	embeddings storage.EmbeddingRepository
	provider   ai.Provider
	parser     pdf.Parser

	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithChunking overrides the embedding chunk geometry.
func WithChunking(size, overlap int) PipelineOption {
	return func(p *Pipeline) {
		p.chunkSize = size
		p.chunkOverlap = overlap
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a Pipeline over the given repositories, model
// provider, and PDF parser.
func NewPipeline(
	documents storage.DocumentRepository,
	jobs storage.JobRepository,
	entities storage.EntityRepository,
	embeddings storage.EmbeddingRepository,
	provider ai.Provider,
	parser pdf.Parser,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if jobs == nil {
		return nil, ErrJobRepositoryRequired
	}
	if entities == nil {
		return nil, ErrEntityRepositoryRequired
	}
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if parser == nil {
		return nil, ErrParserRequired
	}

	p := &Pipeline{
		documents:    documents,
		jobs:         jobs,
		entities:     entities,
		embeddings:   embeddings,
		provider:     provider,
		parser:       parser,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		logger:       slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}
