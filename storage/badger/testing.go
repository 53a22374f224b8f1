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


package badger

import "github.com/poiesic/inquest/storage"

// MemoryRepositories bundles in-memory repositories for testing.
// Caller must Close when done.
type MemoryRepositories struct {
	Documents  storage.DocumentRepository
	Jobs       storage.JobRepository
	Entities   storage.EntityRepository
	Embeddings storage.EmbeddingRepository

	backend *Backend
}

// Close closes the repositories and the shared backend.
func (m *MemoryRepositories) Close() error {
	m.Documents.Close()
	m.Jobs.Close()
	m.Entities.Close()
	m.Embeddings.Close()
	return m.backend.Close()
}

// NewMemoryRepositories creates in-memory repositories for testing.
func NewMemoryRepositories() (*MemoryRepositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	docRepo, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	jobRepo, err := NewJobRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	entityRepo, err := NewEntityRepository(backend)
	if err != nil {
		jobRepo.Close()
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	embeddingRepo, err := NewEmbeddingRepository(backend)
	if err != nil {
		entityRepo.Close()
		jobRepo.Close()
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	return &MemoryRepositories{
		Documents:  docRepo,
		Jobs:       jobRepo,
		Entities:   entityRepo,
		Embeddings: embeddingRepo,
		backend:    backend,
	}, nil
}
