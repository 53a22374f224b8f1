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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidJob indicates a ProcessingJob failed validation.
	ErrInvalidJob = errors.New("invalid processing job")

	// ErrInvalidEntity indicates an Entity failed validation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrEmptySourcePath indicates the SourcePath field is empty.
	ErrEmptySourcePath = errors.New("source path cannot be empty")

	// ErrInvalidJobKind indicates an unrecognized JobKind value.
	ErrInvalidJobKind = errors.New("invalid job kind")

	// ErrInvalidJobStatus indicates an unrecognized JobStatus value.
	ErrInvalidJobStatus = errors.New("invalid job status")

	// ErrEmptyCanonical indicates the entity Canonical field is empty.
	ErrEmptyCanonical = errors.New("entity canonical name cannot be empty")

	// ErrEmptyEntityType indicates the entity Type field is empty.
	ErrEmptyEntityType = errors.New("entity type cannot be empty")
)
