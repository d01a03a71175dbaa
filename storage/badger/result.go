package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

// ResultRepository implements storage.ResultRepository for BadgerDB.
// Match results are write-once: they are inserted, read, and bulk-deleted,
// never updated.
type ResultRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(backend *Backend) (*ResultRepository, error) {
	idSeq, err := backend.GetSequence(resultIDSeq)
	if err != nil {
		return nil, err
	}

	return &ResultRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ResultRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ResultRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddResult persists a match result as a single atomic insert.
func (r *ResultRepository) AddResult(ctx context.Context, result *core.MatchResult) (*core.MatchResult, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
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
		result.Id = core.ID(nextID)
		result.CreatedAt = time.Now().UTC()

		key := makeResultKey(result.Id)
		value, err := storage.MarshalMatchResult(result)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Date index for recency queries
		dateKey := makeResultDateKey(result.CreatedAt, result.Id)
		if err := tx.Set(dateKey, storage.MarshalID(result.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return result, err
}

// GetResult retrieves a single match result by ID.
func (r *ResultRepository) GetResult(ctx context.Context, id core.ID) (*core.MatchResult, error) {
	var result *core.MatchResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResultKey(id)
		var err error
		result, err = r.readResult(tx, key)
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

// GetRecentResults retrieves the N most recent match results, ordered by
// creation time descending.
func (r *ResultRepository) GetRecentResults(ctx context.Context, limit int) ([]*core.MatchResult, error) {
	var results []*core.MatchResult
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent results first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialResultDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(resultDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the result date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var resultID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				resultID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full result
			resultKey := makeResultKey(resultID)
			result, err := r.readResult(tx, resultKey)
			if err != nil {
				return err
			}
			if result != nil {
				results = append(results, result)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteAllResults removes every stored match result and its index
// entries. Returns the number of results deleted; deleting an empty
// store succeeds with count zero.
func (r *ResultRepository) DeleteAllResults(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(resultRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		recordPrefix := []byte(resultRecordPrefix + ":")
		seqKey := []byte(resultIDSeq)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().KeyCopy(nil)
			// The ID sequence shares the prefix; it stays so IDs keep
			// advancing across clears.
			if slices.Compare(key, seqKey) == 0 {
				continue
			}
			if len(key) >= len(recordPrefix) && slices.Compare(key[:len(recordPrefix)], recordPrefix) == 0 {
				count++
			}
			keys = append(keys, key)
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// readResult reads a match result from the transaction.
func (r *ResultRepository) readResult(tx *badger.Txn, key []byte) (*core.MatchResult, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var result *core.MatchResult
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		result, unmarshalErr = storage.UnmarshalMatchResult(val)
		return unmarshalErr
	})
	return result, err
}
