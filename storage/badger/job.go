package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/storage"
)

// JobRepository implements storage.JobRepository for BadgerDB.
//
// Queued jobs carry an entry in the jobq index keyed by
// priority|createdAt|id. Claiming reads the first index entry and commits
// the queued->running transition in the same SSI transaction; when two
// claimers race on one entry, one commit fails with ErrConflict and that
// claimer retries against the next state of the queue. A job is therefore
// never handed to two callers.
type JobRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates a new JobRepository.
func NewJobRepository(backend *Backend) (*JobRepository, error) {
	idSeq, err := backend.GetSequence(jobIDSeq)
	if err != nil {
		return nil, err
	}

	return &JobRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *JobRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *JobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddJobs enqueues one or more processing jobs.
func (r *JobRepository) AddJobs(ctx context.Context, jobs ...*core.ProcessingJob) ([]*core.ProcessingJob, error) {
	for _, job := range jobs {
		if job.Status == "" {
			job.Status = core.JobQueued
		}
		if err := core.ValidateJob(job); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, job := range jobs {
			if job.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				job.Id = core.ID(nextID)
			}

			job.CreatedAt = time.Now().UTC()

			key := makeJobKey(job.Id)
			value := storage.MarshalJob(job)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Only queued jobs belong to the claim index
			if job.Status == core.JobQueued {
				queueKey := makeJobQueueKey(job.Priority, job.CreatedAt, job.Id)
				if err := tx.Set(queueKey, storage.MarshalID(job.Id)); err != nil {
					return err
				}
			}

			docKey := makeJobDocumentKey(job.DocumentId, job.Id)
			if err := tx.Set(docKey, storage.MarshalID(job.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return jobs, err
}

// UpdateJobs updates existing jobs, maintaining the queue index.
func (r *JobRepository) UpdateJobs(ctx context.Context, jobs ...*core.ProcessingJob) ([]*core.ProcessingJob, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, job := range jobs {
			key := makeJobKey(job.Id)

			old, err := readJob(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			value := storage.MarshalJob(job)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			wasQueued := old.Status == core.JobQueued
			isQueued := job.Status == core.JobQueued
			if wasQueued && !isQueued {
				oldQueueKey := makeJobQueueKey(old.Priority, old.CreatedAt, old.Id)
				if err := tx.Delete(oldQueueKey); err != nil {
					return err
				}
			}
			if isQueued {
				if wasQueued {
					oldQueueKey := makeJobQueueKey(old.Priority, old.CreatedAt, old.Id)
					if err := tx.Delete(oldQueueKey); err != nil {
						return err
					}
				}
				queueKey := makeJobQueueKey(job.Priority, job.CreatedAt, job.Id)
				if err := tx.Set(queueKey, storage.MarshalID(job.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return jobs, err
}

// GetJob retrieves a single job by ID.
func (r *JobRepository) GetJob(ctx context.Context, id core.ID) (*core.ProcessingJob, error) {
	var result *core.ProcessingJob
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeJobKey(id)
		var err error
		result, err = readJob(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ClaimNextPending atomically claims the next queued job.
func (r *JobRepository) ClaimNextPending(ctx context.Context) (*core.ProcessingJob, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, err := r.claimOnce()
		if err == nil {
			return job, nil
		}
		// A losing claimer conflicts at commit; retry against the new
		// state of the queue.
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return nil, err
	}
}

// claimOnce attempts a single claim transaction.
func (r *JobRepository) claimOnce() (*core.ProcessingJob, error) {
	var claimed *core.ProcessingJob

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(jobQueuePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var jobID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				jobID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			job, err := readJob(tx, makeJobKey(jobID))
			if err != nil {
				return err
			}
			if job == nil || job.Status != core.JobQueued {
				// Stale index entry; clean it up in passing
				if err := tx.Delete(iter.Item().KeyCopy(nil)); err != nil {
					return err
				}
				continue
			}

			job.Status = core.JobRunning
			job.StartedAt = time.Now().UTC()

			if err := tx.Set(makeJobKey(job.Id), storage.MarshalJob(job)); err != nil {
				return err
			}
			queueKey := makeJobQueueKey(job.Priority, job.CreatedAt, job.Id)
			if err := tx.Delete(queueKey); err != nil {
				return err
			}

			claimed = job
			break
		}

		if claimed == nil {
			return storage.ErrNotFound
		}
		// Iterators must be closed before commit
		iter.Close()
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ListJobsByDocument retrieves all jobs for a document, ordered by ID.
func (r *JobRepository) ListJobsByDocument(ctx context.Context, documentID core.ID) ([]*core.ProcessingJob, error) {
	var results []*core.ProcessingJob
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialJobDocumentKey(documentID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var jobID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				jobID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			job, err := readJob(tx, makeJobKey(jobID))
			if err != nil {
				return err
			}
			if job != nil {
				results = append(results, job)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountJobsByStatus returns the number of jobs per status.
func (r *JobRepository) CountJobsByStatus(ctx context.Context) (map[core.JobStatus]int, error) {
	counts := make(map[core.JobStatus]int)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(jobPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var job *core.ProcessingJob
			err := iter.Item().Value(func(val []byte) error {
				var err error
				job, err = storage.UnmarshalJob(val)
				return err
			})
			if err != nil {
				return err
			}
			if job != nil {
				counts[job.Status]++
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// readJob reads a processing job from the transaction.
func readJob(tx *badger.Txn, key []byte) (*core.ProcessingJob, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var job *core.ProcessingJob
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		job, unmarshalErr = storage.UnmarshalJob(val)
		return unmarshalErr
	})
	return job, err
}
