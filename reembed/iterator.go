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


package reembed

import (
	"context"

	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

const (
	// DefaultBatchSize is the default number of grants to fetch in each batch
	DefaultBatchSize = 100
)

// GrantIterator iterates over all grants in batches.
type GrantIterator struct {
	repo      storage.GrantRepository
	batchSize int
}

// NewGrantIterator creates a new grant iterator.
// batchSize: number of grants to process in each batch (must be > 0)
func NewGrantIterator(repo storage.GrantRepository, batchSize int) *GrantIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &GrantIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all grants, calling fn for each batch.
// Iteration stops on first error from fn or when all grants are processed.
// Context cancellation is checked between batches.
func (it *GrantIterator) ForEach(ctx context.Context, fn func([]*core.Grant) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	grants, err := it.repo.GetAllGrants(ctx)
	if err != nil {
		return err
	}

	if len(grants) == 0 {
		// No grants to process
		return nil
	}

	// Process grants in batches of batchSize
	for i := 0; i < len(grants); i += it.batchSize {
		end := i + it.batchSize
		if end > len(grants) {
			end = len(grants)
		}

		batch := grants[i:end]

		// Call user function with batch
		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
