package mock

import (
	"context"

	"github.com/hack4good-26/GrantAI/core"
)

// MockCandidateFilter is a test double for ai.CandidateFilter.
// It allows custom behavior injection via function fields.
type MockCandidateFilter struct {
	// SelectCandidatesFunc is called by SelectCandidates if set.
	// If nil, uses default behavior: the first targetN indices.
	SelectCandidatesFunc func(ctx context.Context, query *core.Query, candidates []core.Candidate, targetN int) ([]int, error)

	callCount int
}

// NewMockCandidateFilter creates a mock filter with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCandidateFilter() *MockCandidateFilter {
	return &MockCandidateFilter{}
}

// SelectCandidates selects candidates for detailed scoring.
// Default behavior mirrors retrieval order: the first targetN indices.
func (m *MockCandidateFilter) SelectCandidates(ctx context.Context, query *core.Query, candidates []core.Candidate, targetN int) ([]int, error) {
	m.callCount++

	if m.SelectCandidatesFunc != nil {
		return m.SelectCandidatesFunc(ctx, query, candidates, targetN)
	}

	n := targetN
	if len(candidates) < n {
		n = len(candidates)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices, nil
}

// CallCount returns the number of times SelectCandidates was called.
func (m *MockCandidateFilter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockCandidateFilter) Reset() {
	m.callCount = 0
	m.SelectCandidatesFunc = nil
}
