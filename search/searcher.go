package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

// minSimilarity is the floor below which semantic hits are discarded.
const minSimilarity = 0.30

// verbatimBoost is added when every query keyword appears in the grant text.
const verbatimBoost = 0.3

// Searcher provides semantic catalog search with a verbatim keyword boost.
type Searcher struct {
	grantRepository storage.GrantRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	grantRepository storage.GrantRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if grantRepository == nil {
		return nil, ErrGrantRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		grantRepository: grantRepository,
		embedder:        provider.Embedder(),
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for grants similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.GrantHit, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches for grants similar to the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.GrantHit, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Perform semantic search
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	hits, err := s.grantRepository.FindNearest(ctx, embedding, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar grants", "err", err)
		return nil, err
	}

	// Drop weak matches before hydration
	scores := make(map[core.ID]float32, len(hits))
	kept := make([]core.VectorHit, 0, len(hits))
	for _, hit := range hits {
		similarity := core.SimilarityFromDistance(hit.Distance)
		if similarity < minSimilarity {
			continue
		}
		scores[hit.GrantId] = similarity
		kept = append(kept, hit)
	}
	monitor.AfterSemanticSearch(kept)

	if len(kept) == 0 {
		return []*core.GrantHit{}, nil
	}

	// 2. Retrieve the matched grants
	ids := make([]core.ID, 0, len(kept))
	for _, hit := range kept {
		ids = append(ids, hit.GrantId)
	}

	grants, err := s.grantRepository.GetGrants(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving grants", "grantCount", len(ids), "err", err)
		return nil, err
	}
	monitor.AfterGrantRetrieval(grants)

	// 3. Score and build results
	results := make([]*core.GrantHit, 0, len(grants))

	for _, grant := range grants {
		if grant == nil {
			continue
		}

		score := scores[grant.Id]

		// Apply verbatim match boost
		if containsAllQueryWords(grantText(grant), query) {
			score += verbatimBoost
			monitor.VerbatimHit(grant)
		}

		results = append(results, &core.GrantHit{
			Grant: grant,
			Score: score,
		})
	}

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}
