package match

import "github.com/hack4good-26/GrantAI/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results.
type MatchMonitor interface {
	Start(query *core.Query)
	AfterEmbedding(vector []float32)
	AfterRetrieval(candidates []core.Candidate)
	AfterFilter(indices []int, fallback bool)
	AfterScoring(judgments []core.Judgment)
	Finish(result *core.MatchResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Query)                {}
func (n *noopMonitor) AfterEmbedding(_ []float32)         {}
func (n *noopMonitor) AfterRetrieval(_ []core.Candidate)  {}
func (n *noopMonitor) AfterFilter(_ []int, _ bool)        {}
func (n *noopMonitor) AfterScoring(_ []core.Judgment)     {}
func (n *noopMonitor) Finish(_ *core.MatchResult)         {}
