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

// EntityRepository implements storage.EntityRepository for BadgerDB.
//
// Entity IDs are content-derived from the (type, canonical) tuple, so the
// uniqueness of an entity per tuple is structural: concurrent creators
// compute the same key and conflict at commit, and the loser re-reads.
type EntityRepository struct {
	backend      *Backend
	mentionIDSeq *badger.Sequence
}

var _ storage.EntityRepository = (*EntityRepository)(nil)

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(backend *Backend) (*EntityRepository, error) {
	idSeq, err := backend.GetSequence(mentionIDSeq)
	if err != nil {
		return nil, err
	}

	return &EntityRepository{
		backend:      backend,
		mentionIDSeq: idSeq,
	}, nil
}

// Close releases the mention ID sequence.
func (r *EntityRepository) Close() error {
	return r.mentionIDSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *EntityRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetEntity retrieves a single entity by ID.
func (r *EntityRepository) GetEntity(ctx context.Context, id core.ID) (*core.Entity, error) {
	var result *core.Entity
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntity(tx, makeEntityKey(id))
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

// FindEntityByCanonical finds an entity by its (canonical, type) tuple.
func (r *EntityRepository) FindEntityByCanonical(ctx context.Context, canonical, entityType string) (*core.Entity, error) {
	var result *core.Entity
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = findEntityByTuple(tx, canonical, entityType)
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

// GetOrCreateEntity finds or creates an entity by canonical name and type.
func (r *EntityRepository) GetOrCreateEntity(ctx context.Context, name, canonical, entityType string) (*core.Entity, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var result *core.Entity
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			existing, err := findEntityByTuple(tx, canonical, entityType)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}

			entity := &core.Entity{
				Name:      name,
				Canonical: canonical,
				Type:      entityType,
				CreatedAt: time.Now().UTC(),
			}
			if err := core.ValidateEntity(entity); err != nil {
				return err
			}
			entity.Id = core.IDFromContent(entity.Tuple())

			if err := writeEntity(tx, entity); err != nil {
				return err
			}
			result = entity
			return tx.Commit()
		}, true)

		// A concurrent creator of the same tuple wins the commit; re-read.
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// UpdateEntities updates existing entities.
func (r *EntityRepository) UpdateEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entity := range entities {
			old, err := readEntity(tx, makeEntityKey(entity.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if err := writeEntity(tx, entity); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entities, err
}

// RecordMentions records a batch of mentions of one entity transactionally.
func (r *EntityRepository) RecordMentions(ctx context.Context, name, canonical, entityType string, mentions []*core.EntityMention) (*core.Entity, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var result *core.Entity
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			entity, err := findEntityByTuple(tx, canonical, entityType)
			if err != nil {
				return err
			}
			if entity == nil {
				entity = &core.Entity{
					Name:      name,
					Canonical: canonical,
					Type:      entityType,
					CreatedAt: time.Now().UTC(),
				}
				if err := core.ValidateEntity(entity); err != nil {
					return err
				}
				entity.Id = core.IDFromContent(entity.Tuple())
			}
			entity.MentionCount += len(mentions)

			if err := writeEntity(tx, entity); err != nil {
				return err
			}

			for _, mention := range mentions {
				nextID, err := r.mentionIDSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.mentionIDSeq.Next()
					if err != nil {
						return err
					}
				}
				mention.Id = core.ID(nextID)
				mention.EntityId = entity.Id

				if err := tx.Set(makeMentionKey(mention.Id), storage.MarshalMention(mention)); err != nil {
					return err
				}
				docKey := makeMentionDocKey(mention.DocumentId, mention.Id)
				if err := tx.Set(docKey, storage.MarshalID(mention.Id)); err != nil {
					return err
				}
				entityKey := makeMentionEntityKey(mention.EntityId, mention.Id)
				if err := tx.Set(entityKey, storage.MarshalID(mention.Id)); err != nil {
					return err
				}
			}

			result = entity
			return tx.Commit()
		}, true)

		// Concurrent writers to the same entity conflict; replay the batch
		// against the committed counts.
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// ListMentionsByDocument retrieves all mentions recorded for a document.
func (r *EntityRepository) ListMentionsByDocument(ctx context.Context, documentID core.ID) ([]*core.EntityMention, error) {
	return r.listMentions(makePartialMentionDocKey(documentID))
}

// ListMentionsByEntity retrieves all mentions of an entity across documents.
func (r *EntityRepository) ListMentionsByEntity(ctx context.Context, entityID core.ID) ([]*core.EntityMention, error) {
	return r.listMentions(makePartialMentionEntityKey(entityID))
}

// listMentions resolves mention rows through an index prefix.
func (r *EntityRepository) listMentions(startKey []byte) ([]*core.EntityMention, error) {
	var results []*core.EntityMention
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var mentionID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				mentionID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			mention, err := readMention(tx, makeMentionKey(mentionID))
			if err != nil {
				return err
			}
			if mention != nil {
				results = append(results, mention)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// writeEntity stores the primary entity record and its tuple index entry.
func writeEntity(tx *badger.Txn, entity *core.Entity) error {
	if err := tx.Set(makeEntityKey(entity.Id), storage.MarshalEntity(entity)); err != nil {
		return err
	}
	tupleKey := makeEntityTupleKey(entity.Canonical, entity.Type)
	return tx.Set(tupleKey, storage.MarshalID(entity.Id))
}

// findEntityByTuple resolves an entity through the tuple index.
// Returns nil if no entity exists for the tuple.
func findEntityByTuple(tx *badger.Txn, canonical, entityType string) (*core.Entity, error) {
	item, err := tx.Get(makeEntityTupleKey(canonical, entityType))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entityID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		entityID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}

	return readEntity(tx, makeEntityKey(entityID))
}

// readEntity reads an entity from the transaction.
func readEntity(tx *badger.Txn, key []byte) (*core.Entity, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entity *core.Entity
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entity, unmarshalErr = storage.UnmarshalEntity(val)
		return unmarshalErr
	})
	return entity, err
}

// readMention reads an entity mention from the transaction.
func readMention(tx *badger.Txn, key []byte) (*core.EntityMention, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var mention *core.EntityMention
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		mention, unmarshalErr = storage.UnmarshalMention(val)
		return unmarshalErr
	})
	return mention, err
}
