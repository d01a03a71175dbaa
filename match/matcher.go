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


package match

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultRetrievalK is how many grants the vector search returns
	// before filtering.
	DefaultRetrievalK = 10

	// DefaultTargetRecommendations is the maximum number of grants in a
	// match result.
	DefaultTargetRecommendations = 6

	// DefaultTaskTimeout bounds a single per-grant analysis call.
	DefaultTaskTimeout = 45 * time.Second

	// resultTitleLimit caps the auto-generated result title length.
	resultTitleLimit = 100
)

// Matcher runs the grant matching pipeline: retrieve candidates by
// embedding similarity, filter them down with one holistic model call,
// analyze the survivors concurrently, and persist the ranked result.
type Matcher struct {
	grantRepository  storage.GrantRepository
	resultRepository storage.ResultRepository
	embedder         ai.Embedder
	filter           ai.CandidateFilter
	analyst          ai.MatchAnalyst
	pool             *ants.Pool
	retrievalK       int
	targetN          int
	taskTimeout      time.Duration
	logger           *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithRetrievalK sets how many grants vector search returns.
func WithRetrievalK(k int) Option {
	return func(m *Matcher) error {
		if k < 1 {
			k = 1
		}
		m.retrievalK = k
		return nil
	}
}

// WithTargetRecommendations sets the maximum result size.
func WithTargetRecommendations(n int) Option {
	return func(m *Matcher) error {
		if n < 1 {
			n = 1
		}
		m.targetN = n
		return nil
	}
}

// WithTaskTimeout sets the per-grant analysis deadline.
func WithTaskTimeout(timeout time.Duration) Option {
	return func(m *Matcher) error {
		if timeout <= 0 {
			timeout = DefaultTaskTimeout
		}
		m.taskTimeout = timeout
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent analysis.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			size = 1
		}

		if m.pool != nil {
			m.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// NewMatcher creates a new matcher.
func NewMatcher(
	grantRepository storage.GrantRepository,
	resultRepository storage.ResultRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Matcher, error) {
	if grantRepository == nil {
		return nil, ErrGrantRepositoryRequired
	}
	if resultRepository == nil {
		return nil, ErrResultRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &Matcher{
		grantRepository:  grantRepository,
		resultRepository: resultRepository,
		embedder:         provider.Embedder(),
		filter:           provider.CandidateFilter(),
		analyst:          provider.MatchAnalyst(),
		pool:             pool,
		retrievalK:       DefaultRetrievalK,
		targetN:          DefaultTargetRecommendations,
		taskTimeout:      DefaultTaskTimeout,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			m.Release()
			return nil, err
		}
	}

	return m, nil
}

// Release releases the worker pool.
// The matcher should not be used after calling Release.
func (m *Matcher) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}

// Match runs the full pipeline for a query and persists the result.
func (m *Matcher) Match(ctx context.Context, query *core.Query) (*core.MatchResult, error) {
	return m.MatchWithMonitor(ctx, query, nil)
}

// MatchWithMonitor runs the full pipeline with monitoring. The monitor
// receives callbacks at each stage.
func (m *Matcher) MatchWithMonitor(ctx context.Context, query *core.Query, monitor MatchMonitor) (*core.MatchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	monitor.Start(query)

	// 1. Retrieve candidates by embedding similarity
	ret := newRetriever(m.grantRepository, m.embedder, m.retrievalK, m.logger)
	candidates, err := ret.retrieve(ctx, query, monitor)
	if err != nil {
		return nil, err
	}

	// 2. Filter to the candidates worth analyzing
	fs := newFilterStage(m.filter, m.targetN, m.logger)
	selected, indices, fallback := fs.selectCandidates(ctx, query, candidates)
	monitor.AfterFilter(indices, fallback)
	if fallback {
		m.logger.Info("filter fell back to retrieval order", "selected", len(selected))
	}

	// 3. Analyze each selected candidate concurrently
	sc := newScorer(m.analyst, m.pool, m.taskTimeout, m.logger)
	judgments := sc.score(ctx, query, selected)
	monitor.AfterScoring(judgments)

	// 4. Rank and persist
	ranked := rankJudgments(judgments, m.targetN)

	result := &core.MatchResult{
		Title:             resultTitle(query),
		Description:       query.Description,
		EstimatedCost:     query.EstimatedCost,
		TimelineMonths:    query.TimelineMonths,
		RecommendedGrants: ranked,
	}

	result, err = m.resultRepository.AddResult(ctx, result)
	if err != nil {
		m.logger.Error("error persisting match result", "err", err)
		return nil, fmt.Errorf("persisting result: %w", err)
	}

	m.logger.Info("match complete",
		"resultId", result.Id,
		"candidates", len(candidates),
		"recommended", len(result.RecommendedGrants),
		"fallback", fallback)

	monitor.Finish(result)
	return result, nil
}

// resultTitle uses the query title when present, otherwise the start of
// the description.
func resultTitle(query *core.Query) string {
	if query.Title != "" {
		return query.Title
	}
	title := query.Description
	if len(title) > resultTitleLimit {
		title = title[:resultTitleLimit]
	}
	return title
}
