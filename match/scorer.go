package match

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/panjf2000/ants/v2"
)

// scorer runs one analyst call per selected candidate, fanned out on a
// worker pool. Every task settles: an analyst failure or deadline
// produces a degraded judgment instead of failing the batch.
type scorer struct {
	analyst     ai.MatchAnalyst
	pool        *ants.Pool
	taskTimeout time.Duration
	logger      *slog.Logger
}

func newScorer(analyst ai.MatchAnalyst, pool *ants.Pool, taskTimeout time.Duration, logger *slog.Logger) *scorer {
	return &scorer{
		analyst:     analyst,
		pool:        pool,
		taskTimeout: taskTimeout,
		logger:      logger,
	}
}

// score analyzes each candidate concurrently and returns one judgment
// per candidate, in input order.
func (s *scorer) score(ctx context.Context, query *core.Query, candidates []core.Candidate) []core.Judgment {
	judgments := make([]core.Judgment, len(candidates))

	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		i := i
		candidate := candidates[i]
		err := s.pool.Submit(func() {
			defer wg.Done()
			judgments[i] = s.scoreOne(ctx, query, candidate)
		})
		if err != nil {
			// Pool is released or overloaded; settle inline.
			s.logger.Warn("failed to submit scoring task", "grantId", candidate.Grant.Id, "err", err)
			judgments[i] = degradedJudgment(candidate)
			wg.Done()
		}
	}
	wg.Wait()

	return judgments
}

// scoreOne runs a single analysis under the per-task deadline.
func (s *scorer) scoreOne(ctx context.Context, query *core.Query, candidate core.Candidate) core.Judgment {
	taskCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()

	judgment, err := s.analyst.AnalyzeMatch(taskCtx, query, candidate)
	if err != nil {
		s.logger.Warn("match analysis failed, using similarity-based judgment",
			"grantId", candidate.Grant.Id, "err", err)
		return degradedJudgment(candidate)
	}

	judgment.GrantId = candidate.Grant.Id
	judgment.SimilarityScore = candidate.Similarity
	applyFieldDefaults(judgment, candidate)
	return *judgment
}

// degradedJudgment builds the similarity-only judgment used when the
// analyst cannot produce one.
func degradedJudgment(candidate core.Candidate) core.Judgment {
	return core.Judgment{
		GrantId:         candidate.Grant.Id,
		SimilarityScore: candidate.Similarity,
		MatchScore:      scoreFromSimilarity(candidate.Similarity),
		Reasoning:       "analysis unavailable",
		Recommendation:  core.RecommendationWatch,
		WinProbability:  candidate.Similarity,
		Degraded:        true,
	}
}

// applyFieldDefaults fills any field the model left empty so a judgment
// is always presentable.
func applyFieldDefaults(judgment *core.Judgment, candidate core.Candidate) {
	if judgment.MatchScore <= 0 {
		judgment.MatchScore = scoreFromSimilarity(candidate.Similarity)
	}
	if judgment.Reasoning == "" {
		judgment.Reasoning = "analysis unavailable"
	}
	if judgment.Recommendation == "" {
		judgment.Recommendation = core.RecommendationWatch
	}
	if judgment.WinProbability <= 0 {
		judgment.WinProbability = candidate.Similarity
	}
}

func scoreFromSimilarity(similarity float32) int {
	return int(math.Round(float64(similarity) * 100))
}
