package mock

import (
	"context"
	"math"
	"sync"

	"github.com/hack4good-26/GrantAI/core"
)

// MockMatchAnalyst is a test double for ai.MatchAnalyst.
// It allows custom behavior injection via function fields.
// Call counting is synchronized because the pipeline invokes
// AnalyzeMatch concurrently across candidates.
type MockMatchAnalyst struct {
	// AnalyzeMatchFunc is called by AnalyzeMatch if set.
	// If nil, uses default similarity-derived behavior.
	AnalyzeMatchFunc func(ctx context.Context, query *core.Query, candidate core.Candidate) (*core.Judgment, error)

	mu        sync.Mutex
	callCount int
}

// NewMockMatchAnalyst creates a mock analyst with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockMatchAnalyst() *MockMatchAnalyst {
	return &MockMatchAnalyst{}
}

// AnalyzeMatch produces a judgment for the candidate.
// Default behavior derives the score from the candidate's similarity.
func (m *MockMatchAnalyst) AnalyzeMatch(ctx context.Context, query *core.Query, candidate core.Candidate) (*core.Judgment, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.AnalyzeMatchFunc != nil {
		return m.AnalyzeMatchFunc(ctx, query, candidate)
	}

	score := int(math.Round(float64(candidate.Similarity) * 100))
	recommendation := core.RecommendationWatch
	if score >= 80 {
		recommendation = core.RecommendationApply
	} else if score < 40 {
		recommendation = core.RecommendationSkip
	}

	return &core.Judgment{
		MatchScore:     score,
		Reasoning:      "mock analysis",
		WhyFits:        []string{"similar topic"},
		Concerns:       nil,
		Recommendation: recommendation,
		WinProbability: candidate.Similarity,
	}, nil
}

// CallCount returns the number of times AnalyzeMatch was called.
func (m *MockMatchAnalyst) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockMatchAnalyst) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.AnalyzeMatchFunc = nil
}
