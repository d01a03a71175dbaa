package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

// retriever turns a query into a distance-ordered candidate list by
// embedding the query and searching the grant catalog.
type retriever struct {
	grantRepository storage.GrantRepository
	embedder        ai.Embedder
	k               int
	logger          *slog.Logger
}

func newRetriever(grantRepository storage.GrantRepository, embedder ai.Embedder, k int, logger *slog.Logger) *retriever {
	return &retriever{
		grantRepository: grantRepository,
		embedder:        embedder,
		k:               k,
		logger:          logger,
	}
}

// retrieve embeds the query description and returns up to k candidates
// ordered by ascending distance. Hits whose grant record cannot be
// hydrated are dropped. Returns ErrNoCandidates when nothing is found.
func (r *retriever) retrieve(ctx context.Context, query *core.Query, monitor MatchMonitor) ([]core.Candidate, error) {
	embedding, err := r.embedder.EmbedText(ctx, query.Description)
	if err != nil {
		r.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	monitor.AfterEmbedding(embedding)

	hits, err := r.grantRepository.FindNearest(ctx, embedding, r.k)
	if err != nil {
		r.logger.Error("error querying for nearest grants", "err", err)
		return nil, fmt.Errorf("searching grants: %w", err)
	}

	if len(hits) == 0 {
		return nil, ErrNoCandidates
	}

	// Hydrate grants in one read
	ids := make([]core.ID, len(hits))
	for i, hit := range hits {
		ids[i] = hit.GrantId
	}
	grants, err := r.grantRepository.GetGrants(ctx, ids...)
	if err != nil {
		r.logger.Error("error retrieving candidate grants", "err", err)
		return nil, fmt.Errorf("retrieving grants: %w", err)
	}

	byID := make(map[core.ID]*core.Grant, len(grants))
	for _, grant := range grants {
		byID[grant.Id] = grant
	}

	// Preserve retrieval order; a hit without a grant record means the
	// catalog changed underneath us, so skip it.
	candidates := make([]core.Candidate, 0, len(hits))
	for _, hit := range hits {
		grant, ok := byID[hit.GrantId]
		if !ok {
			r.logger.Warn("dropping hit with missing grant record", "grantId", hit.GrantId)
			continue
		}
		candidates = append(candidates, core.Candidate{
			Grant:      grant,
			Distance:   hit.Distance,
			Similarity: core.SimilarityFromDistance(hit.Distance),
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	monitor.AfterRetrieval(candidates)
	return candidates, nil
}
