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
	"fmt"
	"io"
	"time"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of grants to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of grants)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
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

// Reembedder orchestrates the reembedding of the whole grant catalog.
type Reembedder struct {
	repo      storage.GrantRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *GrantIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.GrantRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewGrantIterator(repo, config.BatchSize)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the reembedding operation.
// All grants in the catalog will be reembedded with the configured
// embedder. Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	allGrants, err := r.repo.GetAllGrants(ctx)
	if err != nil {
		return fmt.Errorf("failed to query grants: %w", err)
	}

	totalGrants := len(allGrants)
	if totalGrants == 0 {
		fmt.Fprintf(r.progress, "No grants found in catalog (0 grants)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d grants (batch size: %d)\n",
		totalGrants, r.config.BatchSize)

	// Initialize progress tracker
	tracker := NewProgressTracker(r.progress, totalGrants, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	// Process all grants in batches
	err = r.iterator.ForEach(ctx, func(grants []*core.Grant) error {
		// Process this batch
		if err := r.processor.Process(ctx, grants); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		// Update progress
		processed += len(grants)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	// Finish progress tracking
	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d grants in %v (%.1f grants/sec)\n",
		totalGrants, elapsed.Round(time.Second), float64(totalGrants)/elapsed.Seconds())

	return nil
}
