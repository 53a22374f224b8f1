package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) (*EmbeddingRepository, error) {
	idSeq, err := backend.GetSequence(embeddingIDSeq)
	if err != nil {
		return nil, err
	}

	return &EmbeddingRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *EmbeddingRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindSimilarChunks delegates to the backend.
func (r *EmbeddingRepository) FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error) {
	return r.backend.FindSimilarChunks(ctx, vector, minSimilarity, limit)
}

// ReplaceForDocument swaps a document's embedding set within one transaction.
func (r *EmbeddingRepository) ReplaceForDocument(ctx context.Context, documentID core.ID, embeddings []*core.Embedding) ([]*core.Embedding, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := r.deleteForDocument(tx, documentID); err != nil {
			return err
		}

		for _, embedding := range embeddings {
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
			embedding.Id = core.ID(nextID)
			embedding.DocumentId = documentID

			if err := tx.Set(makeEmbeddingKey(embedding.Id), storage.MarshalEmbedding(embedding)); err != nil {
				return err
			}
			docKey := makeEmbeddingDocKey(documentID, embedding.ChunkIndex)
			if err := tx.Set(docKey, storage.MarshalID(embedding.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return embeddings, err
}

// ListEmbeddingsByDocument retrieves a document's embeddings in chunk order.
func (r *EmbeddingRepository) ListEmbeddingsByDocument(ctx context.Context, documentID core.ID) ([]*core.Embedding, error) {
	var results []*core.Embedding
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialEmbeddingDocKey(documentID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var embeddingID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				embeddingID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			embedding, err := readEmbedding(tx, makeEmbeddingKey(embeddingID))
			if err != nil {
				return err
			}
			if embedding != nil {
				results = append(results, embedding)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteEmbeddingsByDocument removes every embedding for a document.
func (r *EmbeddingRepository) DeleteEmbeddingsByDocument(ctx context.Context, documentID core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := r.deleteForDocument(tx, documentID); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// deleteForDocument removes a document's embedding rows and index entries
// within the transaction.
func (r *EmbeddingRepository) deleteForDocument(tx *badger.Txn, documentID core.ID) error {
	startKey := makePartialEmbeddingDocKey(documentID)

	// Collect first: deleting under an open iterator is undefined.
	type pair struct {
		indexKey []byte
		id       core.ID
	}
	var doomed []pair

	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}

		var embeddingID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			embeddingID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			iter.Close()
			return err
		}
		doomed = append(doomed, pair{indexKey: iter.Item().KeyCopy(nil), id: embeddingID})
	}
	iter.Close()

	for _, p := range doomed {
		if err := tx.Delete(p.indexKey); err != nil {
			return err
		}
		if err := tx.Delete(makeEmbeddingKey(p.id)); err != nil {
			return err
		}
	}
	return nil
}

// readEmbedding reads an embedding from the transaction.
func readEmbedding(tx *badger.Txn, key []byte) (*core.Embedding, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var embedding *core.Embedding
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		embedding, unmarshalErr = storage.UnmarshalEmbedding(val)
		return unmarshalErr
	})
	return embedding, err
}
