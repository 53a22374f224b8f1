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

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - SourcePath must not be empty
//
// NOT validated (populated by pipeline stages):
//   - ExtractedText, PageCount, RedactionScore, NeedsOCR
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.SourcePath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptySourcePath)
	}

	return nil
}

// ValidateJob validates a ProcessingJob according to domain rules.
//
// Validation rules:
//   - DocumentId must be set
//   - Kind must be one of the known job kinds
//   - Status, when set, must be one of the known job statuses
func ValidateJob(job *ProcessingJob) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidJob)
	}

	if job.DocumentId == 0 {
		return fmt.Errorf("%w: document id required", ErrInvalidJob)
	}

	if err := ValidateJobKind(job.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	if job.Status != "" {
		if err := ValidateJobStatus(job.Status); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidJob, err)
		}
	}

	return nil
}

// ValidateEntity validates an Entity according to domain rules.
//
// Validation rules:
//   - Canonical must not be empty
//   - Type must not be empty
func ValidateEntity(entity *Entity) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	if entity.Canonical == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyCanonical)
	}

	if entity.Type == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyEntityType)
	}

	return nil
}

// ValidateJobKind validates that a JobKind has a known value.
func ValidateJobKind(kind JobKind) error {
	switch kind {
	case JobExtractText, JobDetectRedaction, JobNER, JobEmbed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidJobKind, kind)
}

// ValidateJobStatus validates that a JobStatus has a known value.
func ValidateJobStatus(status JobStatus) error {
	switch status {
	case JobQueued, JobRunning, JobCompleted, JobFailed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidJobStatus, status)
}
