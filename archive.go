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

// Package inquest assembles the document archive: a Badger-backed
// store of documents, jobs, entities, and embeddings, plus the AI
// provider and PDF parser the processing pipeline runs against.
package inquest

import (
	"io"
	"log/slog"

	"github.com/poiesic/inquest/ai"
	"github.com/poiesic/inquest/ai/openai"
	"github.com/poiesic/inquest/ingest"
	"github.com/poiesic/inquest/pdf"
	"github.com/poiesic/inquest/pipeline"
	"github.com/poiesic/inquest/reprocess"
	"github.com/poiesic/inquest/search"
	"github.com/poiesic/inquest/storage"
	"github.com/poiesic/inquest/storage/badger"
)

// Archive bundles the storage backend, repositories, and model
// provider behind a single open/close lifecycle.
type Archive struct {
	backend       *badger.Backend
	documentRepo  storage.DocumentRepository
	jobRepo       storage.JobRepository
	entityRepo    storage.EntityRepository
	embeddingRepo storage.EmbeddingRepository
	provider      ai.Provider
	parser        pdf.Parser
	logger        *slog.Logger
}

// ArchiveOption configures an Archive.
type ArchiveOption func(*archiveOptions)

type archiveOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) ArchiveOption {
	return func(o *archiveOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing
// one from configuration. Used by tests with mock providers.
func WithProvider(provider ai.Provider) ArchiveOption {
	return func(o *archiveOptions) {
		o.provider = provider
	}
}

// OpenArchive opens the archive database at filePath and constructs
// its repositories and services.
func OpenArchive(filePath string, opts ...ArchiveOption) (*Archive, error) {
	options := &archiveOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	documentRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	jobRepo, err := badger.NewJobRepository(backend)
	if err != nil {
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	entityRepo, err := badger.NewEntityRepository(backend)
	if err != nil {
		jobRepo.Close()
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	embeddingRepo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		entityRepo.Close()
		jobRepo.Close()
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			embeddingRepo.Close()
			entityRepo.Close()
			jobRepo.Close()
			documentRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Archive{
		backend:       backend,
		documentRepo:  documentRepo,
		jobRepo:       jobRepo,
		entityRepo:    entityRepo,
		embeddingRepo: embeddingRepo,
		provider:      provider,
		parser:        pdf.NewParser(),
		logger:        slog.Default(),
	}, nil
}

// Close shuts the archive down in reverse construction order.
func (a *Archive) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.embeddingRepo.Close(); err != nil {
		a.logger.Error("error closing embedding repository", "err", err)
		return err
	}
	if err := a.entityRepo.Close(); err != nil {
		a.logger.Error("error closing entity repository", "err", err)
		return err
	}
	if err := a.jobRepo.Close(); err != nil {
		a.logger.Error("error closing job repository", "err", err)
		return err
	}
	if err := a.documentRepo.Close(); err != nil {
		a.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *Archive) DocumentRepository() storage.DocumentRepository {
	return a.documentRepo
}

func (a *Archive) JobRepository() storage.JobRepository {
	return a.jobRepo
}

func (a *Archive) EntityRepository() storage.EntityRepository {
	return a.entityRepo
}

func (a *Archive) EmbeddingRepository() storage.EmbeddingRepository {
	return a.embeddingRepo
}

func (a *Archive) Provider() ai.Provider {
	return a.provider
}

// NewPipeline builds a processing pipeline over the archive.
func (a *Archive) NewPipeline(opts ...pipeline.PipelineOption) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(a.documentRepo, a.jobRepo, a.entityRepo, a.embeddingRepo, a.provider, a.parser, opts...)
}

// NewWorker builds a queue worker over a pipeline.
func (a *Archive) NewWorker(p *pipeline.Pipeline, opts ...pipeline.WorkerOption) (*pipeline.Worker, error) {
	return pipeline.NewWorker(p, a.jobRepo, opts...)
}

// NewImporter builds a local directory importer.
func (a *Archive) NewImporter(opts ...ingest.Option) (*ingest.Importer, error) {
	return ingest.NewImporter(a.documentRepo, a.jobRepo, opts...)
}

// NewSearcher builds a semantic chunk searcher.
func (a *Archive) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.documentRepo, a.embeddingRepo, a.provider, opts...)
}

// NewReprocessor builds a stage re-enqueuer writing progress to w.
func (a *Archive) NewReprocessor(cfg *reprocess.Config, w io.Writer) (*reprocess.Reprocessor, error) {
	return reprocess.NewReprocessor(a.documentRepo, a.jobRepo, cfg, w)
}
