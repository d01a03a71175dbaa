// Copyright 2026 Hack4Good
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

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

// GrantRepository implements storage.GrantRepository for BadgerDB.
type GrantRepository struct {
	backend *Backend
}

var _ storage.GrantRepository = (*GrantRepository)(nil)

// NewGrantRepository creates a new GrantRepository.
func NewGrantRepository(backend *Backend) (*GrantRepository, error) {
	return &GrantRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *GrantRepository) Close() error {
	return nil
}

// FindNearest delegates to the backend.
func (r *GrantRepository) FindNearest(ctx context.Context, vector []float32, k int) ([]core.VectorHit, error) {
	return r.backend.FindNearest(ctx, vector, k)
}

// WithTransaction delegates to the backend.
func (r *GrantRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddGrants adds one or more grants to the catalog. IDs are derived from
// the grant title, so re-ingesting a feed overwrites grants in place
// rather than duplicating them.
func (r *GrantRepository) AddGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, grant := range grants {
			grant.Id = core.IDFromContent(grant.Title)

			key := makeGrantKey(grant.Id)
			now := time.Now().UTC()
			old, err := r.readGrant(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				// Keep the original insertion time and any embedding
				// the incoming record does not carry.
				grant.InsertedAt = old.InsertedAt
				if len(grant.Vector) == 0 {
					grant.Vector = old.Vector
				}
			} else {
				grant.InsertedAt = now
			}
			grant.UpdatedAt = now

			value, err := storage.MarshalGrant(grant)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return grants, err
}

// UpdateGrants updates existing grants, typically to attach embeddings.
func (r *GrantRepository) UpdateGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, grant := range grants {
			key := makeGrantKey(grant.Id)

			old, err := r.readGrant(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			grant.InsertedAt = old.InsertedAt
			grant.UpdatedAt = time.Now().UTC()

			value, err := storage.MarshalGrant(grant)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return grants, err
}

// DeleteGrants removes grants by their IDs.
func (r *GrantRepository) DeleteGrants(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeGrantKey(id)

			grant, err := r.readGrant(tx, key)
			if err != nil {
				return err
			}
			if grant == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetGrant retrieves a single grant by ID.
func (r *GrantRepository) GetGrant(ctx context.Context, id core.ID) (*core.Grant, error) {
	var result *core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeGrantKey(id)
		var err error
		result, err = r.readGrant(tx, key)
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

// GetGrants retrieves multiple grants by their IDs. Missing IDs are
// silently skipped.
func (r *GrantRepository) GetGrants(ctx context.Context, ids ...core.ID) ([]*core.Grant, error) {
	var result []*core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeGrantKey(id)
			grant, err := r.readGrant(tx, key)
			if err != nil {
				return err
			}
			if grant != nil {
				result = append(result, grant)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllGrants retrieves every grant in the catalog.
func (r *GrantRepository) GetAllGrants(ctx context.Context) ([]*core.Grant, error) {
	var results []*core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(grantRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var grant *core.Grant
			err := iter.Item().Value(func(val []byte) error {
				var err error
				grant, err = storage.UnmarshalGrant(val)
				return err
			})
			if err != nil {
				return err
			}
			if grant != nil {
				results = append(results, grant)
			}
		}
		return nil
	}, false)
	return results, err
}

// readGrant reads a grant from the transaction.
func (r *GrantRepository) readGrant(tx *badger.Txn, key []byte) (*core.Grant, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var grant *core.Grant
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		grant, unmarshalErr = storage.UnmarshalGrant(val)
		return unmarshalErr
	})
	return grant, err
}
