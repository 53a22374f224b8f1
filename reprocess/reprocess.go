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

package reprocess

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/pipeline"
	"github.com/poiesic/inquest/storage"
)

// Config holds configuration for a reprocessing run.
type Config struct {
	// BatchSize is the number of documents enqueued per transaction batch
	BatchSize int

	// ReportInterval is how often to report progress (number of documents)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed enqueues
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reprocessor re-enqueues pipeline stages for stored documents.
type Reprocessor struct {
	documents storage.DocumentRepository
	jobs      storage.JobRepository
	config    *Config
	progress  io.Writer
}

// NewReprocessor creates a new reprocessor.
// progress: where to write progress output (typically os.Stderr)
func NewReprocessor(documents storage.DocumentRepository, jobs storage.JobRepository, config *Config, progress io.Writer) (*Reprocessor, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if jobs == nil {
		return nil, ErrJobRepositoryRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reprocessor{
		documents: documents,
		jobs:      jobs,
		config:    config,
		progress:  progress,
	}, nil
}

// Run enqueues the given job kinds for every document, optionally
// restricted to documents in the given status (empty matches all).
// Returns the number of documents re-enqueued.
func (r *Reprocessor) Run(ctx context.Context, status core.DocumentStatus, kinds []core.JobKind) (int, error) {
	if len(kinds) == 0 {
		return 0, ErrNoJobKinds
	}
	for _, kind := range kinds {
		if err := core.ValidateJobKind(kind); err != nil {
			return 0, err
		}
	}

	docs, err := r.documents.ListDocuments(ctx, status, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Fprintf(r.progress, "No documents to reprocess (status %q)\n", status)
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Reprocessing %d documents with %d stage(s) (batch size: %d)\n",
		len(docs), len(kinds), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, len(docs), r.config.ReportInterval)
	tracker.Start()

	processed := 0
	for start := 0; start < len(docs); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		jobs := make([]*core.ProcessingJob, 0, len(batch)*len(kinds))
		for _, doc := range batch {
			for _, kind := range kinds {
				jobs = append(jobs, &core.ProcessingJob{
					DocumentId: doc.Id,
					Kind:       kind,
					Priority:   StagePriority(kind),
				})
			}
		}

		err := RetryWithBackoff(ctx, func() error {
			_, err := r.jobs.AddJobs(ctx, jobs...)
			return err
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return processed, fmt.Errorf("failed to enqueue batch after %d attempts: %w", r.config.MaxRetries, err)
		}

		processed += len(batch)
		tracker.Update(processed)
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reprocessing complete. Enqueued %d jobs for %d documents in %v\n",
		processed*len(kinds), processed, elapsed.Round(time.Second))

	return processed, nil
}

// StagePriority returns the queue priority used for a job kind.
func StagePriority(kind core.JobKind) int {
	switch kind {
	case core.JobExtractText:
		return pipeline.PriorityExtract
	case core.JobDetectRedaction:
		return pipeline.PriorityRedaction
	case core.JobNER:
		return pipeline.PriorityNER
	case core.JobEmbed:
		return pipeline.PriorityEmbed
	default:
		return pipeline.PriorityEmbed
	}
}
