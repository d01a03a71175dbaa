package search

import "github.com/hack4good-26/GrantAI/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterSemanticSearch(hits []core.VectorHit)
	AfterGrantRetrieval(grants []*core.Grant)
	VerbatimHit(grant *core.Grant)
	Finish(results []*core.GrantHit)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.VectorHit) {}
func (n *noopMonitor) AfterGrantRetrieval(_ []*core.Grant)  {}
func (n *noopMonitor) VerbatimHit(_ *core.Grant)            {}
func (n *noopMonitor) Finish(_ []*core.GrantHit)            {}
