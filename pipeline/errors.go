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

package pipeline

import "errors"

var (
	// ErrDocumentRepositoryRequired indicates a nil document repository.
	ErrDocumentRepositoryRequired = errors.New("document repository is required")
	// ErrJobRepositoryRequired indicates a nil job repository.
	ErrJobRepositoryRequired = errors.New("job repository is required")
	// ErrEntityRepositoryRequired indicates a nil entity repository.
	ErrEntityRepositoryRequired = errors.New("entity repository is required")
	// ErrEmbeddingRepositoryRequired indicates a nil embedding repository.
	ErrEmbeddingRepositoryRequired = errors.New("embedding repository is required")
	// ErrProviderRequired indicates a nil AI provider.
	ErrProviderRequired = errors.New("ai provider is required")
	// ErrParserRequired indicates a nil PDF parser.
	ErrParserRequired = errors.New("pdf parser is required")
	// ErrEmbeddingCountMismatch indicates the embedder returned a different
	// number of vectors than chunks submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match chunk count")
	// ErrUnknownJobKind indicates a claimed job with a kind no stage handles.
	ErrUnknownJobKind = errors.New("unknown job kind")
)
