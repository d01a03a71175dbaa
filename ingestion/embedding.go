package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

// embeddingProcessor generates embeddings for grants.
type embeddingProcessor struct {
	grantRepository storage.GrantRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(grantRepository storage.GrantRepository, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if grantRepository == nil {
		return nil, fmt.Errorf("grant repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		grantRepository: grantRepository,
		embedder:        embedder,
		logger:          logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified grants.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing grants for embeddings", "grants", len(ids))

	grants, err := ep.grantRepository.GetGrants(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving grants", "err", err)
		return err
	}

	texts := make([]string, len(grants))
	for i, grant := range grants {
		texts[i] = EmbeddingText(grant)
	}

	ep.logger.Debug("generating embeddings for grants", "grants", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(grants) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(grants), len(embeddings))
	}

	for i := range embeddings {
		grants[i].Vector = embeddings[i]
	}

	_, err = ep.grantRepository.UpdateGrants(ctx, grants...)
	return err
}

// EmbeddingText builds the text that represents a grant in vector
// space: the title plus whatever descriptive fields are populated.
func EmbeddingText(grant *core.Grant) string {
	parts := make([]string, 0, 4)
	parts = append(parts, grant.Title)
	for _, field := range []string{grant.Description, grant.AboutGrant, grant.WhoCanApply} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, "\n\n")
}
