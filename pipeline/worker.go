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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/storage"
)

const (
	defaultIdleDelay  = 5 * time.Second
	defaultErrorDelay = 10 * time.Second

	// maxErrorLen bounds the failure message stored on a job.
	maxErrorLen = 500
)

// Worker claims jobs from the queue and dispatches them to pipeline
// stages until its context is canceled. A failed job never stops the
// loop; the error is recorded on the job and the worker moves on.
type Worker struct {
	pipeline   *Pipeline
	jobs       storage.JobRepository
	idleDelay  time.Duration
	errorDelay time.Duration
	logger     *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithIdleDelay sets the sleep after finding the queue empty.
func WithIdleDelay(d time.Duration) WorkerOption {
	return func(w *Worker) { w.idleDelay = d }
}

// WithErrorDelay sets the sleep after a claim error.
func WithErrorDelay(d time.Duration) WorkerOption {
	return func(w *Worker) { w.errorDelay = d }
}

// WithWorkerLogger sets a custom logger.
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) { w.logger = logger }
}

// NewWorker creates a Worker over the given pipeline and job queue.
func NewWorker(pipeline *Pipeline, jobs storage.JobRepository, opts ...WorkerOption) (*Worker, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if jobs == nil {
		return nil, ErrJobRepositoryRequired
	}

	w := &Worker{
		pipeline:   pipeline,
		jobs:       jobs,
		idleDelay:  defaultIdleDelay,
		errorDelay: defaultErrorDelay,
		logger:     slog.Default().With("component", "worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run claims and processes jobs until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		job, err := w.jobs.ClaimNextPending(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				if err := sleep(ctx, w.idleDelay); err != nil {
					return err
				}
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("failed to claim job", "err", err)
			if err := sleep(ctx, w.errorDelay); err != nil {
				return err
			}
			continue
		}

		w.process(ctx, job)
	}
}

// ProcessOne claims and processes a single job. Returns
// storage.ErrNotFound when the queue is empty.
func (w *Worker) ProcessOne(ctx context.Context) error {
	job, err := w.jobs.ClaimNextPending(ctx)
	if err != nil {
		return err
	}
	w.process(ctx, job)
	return nil
}

// process dispatches a claimed job and records its terminal status.
func (w *Worker) process(ctx context.Context, job *core.ProcessingJob) {
	w.logger.Info("processing job", "job", job.Id, "kind", job.Kind, "document", job.DocumentId)

	err := w.dispatch(ctx, job)
	job.CompletedAt = time.Now()
	if err != nil {
		job.Status = core.JobFailed
		job.Error = truncateError(err)
		w.logger.Error("job failed", "job", job.Id, "kind", job.Kind, "err", err)
	} else {
		job.Status = core.JobCompleted
		job.Error = ""
	}

	if _, err := w.jobs.UpdateJobs(ctx, job); err != nil {
		w.logger.Error("failed to record job result", "job", job.Id, "err", err)
	}
}

// dispatch routes a job to the pipeline stage for its kind.
func (w *Worker) dispatch(ctx context.Context, job *core.ProcessingJob) error {
	switch job.Kind {
	case core.JobExtractText:
		return w.pipeline.ExtractText(ctx, job.DocumentId)
	case core.JobDetectRedaction:
		return w.pipeline.DetectRedaction(ctx, job.DocumentId)
	case core.JobNER:
		return w.pipeline.ExtractEntities(ctx, job.DocumentId)
	case core.JobEmbed:
		return w.pipeline.GenerateEmbeddings(ctx, job.DocumentId)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}
}

// truncateError bounds a failure message for storage.
func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return msg
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
