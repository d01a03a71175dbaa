package match

import (
	"context"
	"log/slog"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
)

// filterStage narrows the retrieved candidate list to the ones worth
// a full analysis, using a single holistic model call.
type filterStage struct {
	filter  ai.CandidateFilter
	targetN int
	logger  *slog.Logger
}

func newFilterStage(filter ai.CandidateFilter, targetN int, logger *slog.Logger) *filterStage {
	return &filterStage{
		filter:  filter,
		targetN: targetN,
		logger:  logger,
	}
}

// selectCandidates returns the chosen subset of candidates, at most
// targetN, preserving the model's selection order. When the model call
// fails or yields no usable indices, it falls back to the first targetN
// candidates in retrieval order and reports fallback=true. For a
// non-empty input it always selects at least one candidate.
func (f *filterStage) selectCandidates(ctx context.Context, query *core.Query, candidates []core.Candidate) (selected []core.Candidate, indices []int, fallback bool) {
	indices, err := f.filter.SelectCandidates(ctx, query, candidates, f.targetN)
	if err != nil {
		f.logger.Warn("candidate filter failed, keeping top candidates", "err", err)
		indices = nil
	}

	indices = sanitizeIndices(indices, len(candidates), f.targetN)
	if len(indices) == 0 {
		fallback = true
		n := f.targetN
		if n > len(candidates) {
			n = len(candidates)
		}
		indices = make([]int, n)
		for i := range indices {
			indices[i] = i
		}
	}

	selected = make([]core.Candidate, len(indices))
	for i, idx := range indices {
		selected[i] = candidates[idx]
	}
	return selected, indices, fallback
}

// sanitizeIndices drops out-of-range and duplicate indices and caps the
// selection at targetN.
func sanitizeIndices(indices []int, numCandidates, targetN int) []int {
	seen := make(map[int]bool, len(indices))
	valid := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= numCandidates {
			continue
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		valid = append(valid, idx)
		if len(valid) == targetN {
			break
		}
	}
	return valid
}
