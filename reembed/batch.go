package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/ingestion"
	"github.com/hack4good-26/GrantAI/storage"
)

// BatchProcessor handles embedding generation for batches of grants.
type BatchProcessor struct {
	repo           storage.GrantRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.GrantRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of grants and updates them in
// the database. Vectors are normalized after embedding to ensure
// compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, grants []*core.Grant) error {
	if len(grants) == 0 {
		return nil
	}

	texts := make([]string, len(grants))
	for i, grant := range grants {
		texts[i] = ingestion.EmbeddingText(grant)
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(grants) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(grants), len(embeddings))
	}

	// Normalize vectors and assign to grants
	for i := range grants {
		grants[i].Vector = NormalizeVector(embeddings[i])
	}

	// Update grants in database
	_, err = bp.repo.UpdateGrants(ctx, grants...)
	if err != nil {
		return fmt.Errorf("failed to update grants: %w", err)
	}

	return nil
}
