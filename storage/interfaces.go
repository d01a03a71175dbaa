package storage

import (
	"context"

	"github.com/hack4good-26/GrantAI/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// GrantRepository provides read and catalog-maintenance access to grants,
// including approximate nearest-neighbor search over their embeddings.
type GrantRepository interface {
	Repository

	// AddGrants adds one or more grants to the catalog.
	// IDs are derived from the grant title via content hashing, so
	// re-adding the same grant overwrites it in place.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the grants with IDs and timestamps populated.
	AddGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error)

	// UpdateGrants updates existing grants (used to attach embeddings).
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any grant doesn't exist.
	UpdateGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error)

	// DeleteGrants removes grants by their IDs.
	// Returns ErrNotFound if any grant doesn't exist.
	DeleteGrants(ctx context.Context, ids ...core.ID) error

	// GetGrant retrieves a single grant by ID.
	// Returns ErrNotFound if the grant doesn't exist.
	GetGrant(ctx context.Context, id core.ID) (*core.Grant, error)

	// GetGrants retrieves multiple grants by their IDs.
	// Returns only the grants that exist (no error for missing grants).
	GetGrants(ctx context.Context, ids ...core.ID) ([]*core.Grant, error)

	// GetAllGrants retrieves every grant in the catalog.
	GetAllGrants(ctx context.Context) ([]*core.Grant, error)

	// FindNearest finds the k grants nearest to the query vector.
	// Returns hits ordered by ascending cosine distance (in [0, 2]),
	// up to k results. Grants without embeddings are skipped.
	FindNearest(ctx context.Context, vector []float32, k int) ([]core.VectorHit, error)
}

// ResultRepository persists match results as immutable records.
type ResultRepository interface {
	Repository

	// AddResult persists a match result as a single atomic insert.
	// Generates a new ID from sequence and sets CreatedAt.
	// Returns the result with ID and timestamp populated.
	AddResult(ctx context.Context, result *core.MatchResult) (*core.MatchResult, error)

	// GetResult retrieves a single match result by ID.
	// Returns ErrNotFound if the result doesn't exist.
	GetResult(ctx context.Context, id core.ID) (*core.MatchResult, error)

	// GetRecentResults retrieves the N most recent match results,
	// ordered by creation time descending.
	GetRecentResults(ctx context.Context, limit int) ([]*core.MatchResult, error)

	// DeleteAllResults removes every stored match result and returns the
	// number deleted. Idempotent: succeeds with count zero when there is
	// nothing to delete.
	DeleteAllResults(ctx context.Context) (int, error)
}
