package match

import (
	"sort"

	"github.com/hack4good-26/GrantAI/core"
)

// rankJudgments orders judgments by descending match score and keeps at
// most limit of them. The sort is stable so ties keep their scoring
// order, which makes results reproducible for a fixed set of model
// outputs.
func rankJudgments(judgments []core.Judgment, limit int) []core.Judgment {
	ranked := make([]core.Judgment, len(judgments))
	copy(ranked, judgments)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
