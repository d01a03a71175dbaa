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


package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates the ingestion of grants into the catalog.
// It manages concurrent embedding of newly added grants.
type Pipeline struct {
	grantRepository storage.GrantRepository
	embeddingPool   *ants.Pool
	embeddingProc   *embeddingProcessor
	batchSize       int
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithBatchSize sets how many grants go to the embedder per call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	grantRepository storage.GrantRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if grantRepository == nil {
		return nil, ErrGrantRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	logger := slog.Default()

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		grantRepository: grantRepository,
		embeddingPool:   embeddingPool,
		batchSize:       32,
		logger:          logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	embeddingProc, err := newEmbeddingProcessor(grantRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest validates and stores grants, then submits them for async
// embedding. Invalid grants fail the whole batch before anything is
// written. Errors during async processing are logged but do not fail
// the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error) {
	for _, grant := range grants {
		if err := core.ValidateGrant(grant); err != nil {
			return nil, err
		}
	}

	added, err := p.grantRepository.AddGrants(ctx, grants...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	// Submit for async embedding in batches
	for start := 0; start < len(added); start += p.batchSize {
		end := start + p.batchSize
		if end > len(added) {
			end = len(added)
		}

		ids := make([]core.ID, end-start)
		for i, grant := range added[start:end] {
			ids[i] = grant.Id
		}

		p.embeddingPool.Submit(func() {
			if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error processing embeddings", "err", err)
			}
		})
	}

	return added, nil
}

// IngestAndWait stores grants and embeds them synchronously. Used by
// the seeder, where there is nothing else to do until embedding
// completes.
func (p *Pipeline) IngestAndWait(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error) {
	for _, grant := range grants {
		if err := core.ValidateGrant(grant); err != nil {
			return nil, err
		}
	}

	added, err := p.grantRepository.AddGrants(ctx, grants...)
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(added); start += p.batchSize {
		end := start + p.batchSize
		if end > len(added) {
			end = len(added)
		}

		ids := make([]core.ID, end-start)
		for i, grant := range added[start:end] {
			ids[i] = grant.Id
		}

		if err := p.embeddingProc.process(ctx, ids...); err != nil {
			return nil, err
		}
	}

	return added, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
