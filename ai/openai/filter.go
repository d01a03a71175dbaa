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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// CandidateFilter implements ai.CandidateFilter using OpenAI-compatible chat APIs.
// It issues one holistic call covering all candidates and parses a bare
// JSON array of zero-based indices from the response.
type CandidateFilter struct {
	client llms.Model
	logger *slog.Logger
}

// newCandidateFilter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCandidateFilter(config *ai.Config) (*CandidateFilter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.AnalystHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.AnalystModel),
	)
	if err != nil {
		return nil, err
	}

	return &CandidateFilter{
		client: client,
		logger: slog.Default().With("component", "openai-filter"),
	}, nil
}

// NewCandidateFilter creates a new candidate filter using the provided configuration.
//
// Returns ai.CandidateFilter interface to enforce abstraction.
func NewCandidateFilter(config *ai.Config) (ai.CandidateFilter, error) {
	return newCandidateFilter(config)
}

// SelectCandidates asks the model to pick the most relevant candidates.
// The response must be a bare JSON array of integers; code fences are
// stripped before parsing and parsing is retried against a fresh
// completion up to 3 attempts. Indices are returned as parsed, without
// bounds-checking; the pipeline's filter stage applies its own policy.
func (f *CandidateFilter) SelectCandidates(ctx context.Context, query *core.Query, candidates []core.Candidate, targetN int) ([]int, error) {
	prompt := buildFilterPrompt(query, candidates, targetN)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	var indices []int
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := f.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
		if err != nil {
			f.logger.Error("filter call failed", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("filter call failed: %w", err)
		}

		if len(response.Choices) < 1 {
			f.logger.Debug("no choices returned from model")
			return nil, ai.ErrNoSelection
		}

		responseText := stripCodeFences(response.Choices[0].Content)

		if err := json.Unmarshal([]byte(responseText), &indices); err != nil {
			lastErr = err
			f.logger.Warn("error parsing filter response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		f.logger.Error("failed to parse filter response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrUnparsableResponse, lastErr)
	}

	if len(indices) == 0 {
		return nil, ai.ErrNoSelection
	}

	f.logger.Debug("filter selected candidates", "count", len(indices))
	return indices, nil
}
