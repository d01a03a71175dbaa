// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.CandidateFilter, ai.MatchAnalyst, and ai.AIProvider for use in unit
// tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockFilter := mock.NewMockCandidateFilter()
//	mockFilter.SelectCandidatesFunc = func(ctx context.Context, q *core.Query, cands []core.Candidate, n int) ([]int, error) {
//	    return []int{0, 1, 3, 4}, nil
//	}
//
//	// Check call counts
//	count := mockFilter.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockCandidateFilter: Selects the first targetN candidates
//   - MockMatchAnalyst: Scores candidates from their similarity
//   - MockProvider: Aggregates the three mocks
package mock
