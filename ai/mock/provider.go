// Copyright 2026 Hack4Good
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/hack4good-26/GrantAI/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, filter, and analyst instances.
type MockProvider struct {
	embedder *MockEmbedder
	filter   *MockCandidateFilter
	analyst  *MockMatchAnalyst
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockFilter()/GetMockAnalyst() to access concrete
// types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		filter:   NewMockCandidateFilter(),
		analyst:  NewMockMatchAnalyst(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, filter *MockCandidateFilter, analyst *MockMatchAnalyst) ai.AIProvider {
	return &MockProvider{
		embedder: embedder,
		filter:   filter,
		analyst:  analyst,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// CandidateFilter returns the mock candidate filter.
func (p *MockProvider) CandidateFilter() ai.CandidateFilter {
	return p.filter
}

// MatchAnalyst returns the mock match analyst.
func (p *MockProvider) MatchAnalyst() ai.MatchAnalyst {
	return p.analyst
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockFilter returns the underlying mock filter for test assertions.
func (p *MockProvider) GetMockFilter() *MockCandidateFilter {
	return p.filter
}

// GetMockAnalyst returns the underlying mock analyst for test assertions.
func (p *MockProvider) GetMockAnalyst() *MockMatchAnalyst {
	return p.analyst
}
