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

// MatchAnalyst implements ai.MatchAnalyst using OpenAI-compatible chat APIs.
type MatchAnalyst struct {
	client llms.Model
	logger *slog.Logger
}

// matchAnalysis is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type matchAnalysis struct {
	MatchScore     int      `json:"match_score"`
	WhyFits        []string `json:"why_fits"`
	Concerns       []string `json:"concerns"`
	Recommendation string   `json:"decision_recommendation"`
	WinProbability float32  `json:"win_probability"`
	Reasoning      string   `json:"match_reasoning"`
}

// newMatchAnalyst is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newMatchAnalyst(config *ai.Config) (*MatchAnalyst, error) {
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

	return &MatchAnalyst{
		client: client,
		logger: slog.Default().With("component", "openai-analyst"),
	}, nil
}

// NewMatchAnalyst creates a new match analyst using the provided configuration.
//
// Returns ai.MatchAnalyst interface to enforce abstraction.
func NewMatchAnalyst(config *ai.Config) (ai.MatchAnalyst, error) {
	return newMatchAnalyst(config)
}

// AnalyzeMatch issues one judgment call for the candidate and coerces the
// loosely-shaped provider JSON into a strict core.Judgment. GrantId and
// SimilarityScore are left zero for the caller to fill in. Out-of-range
// values are clamped at this boundary so provider-shaped data never
// crosses into the pipeline unchecked.
func (a *MatchAnalyst) AnalyzeMatch(ctx context.Context, query *core.Query, candidate core.Candidate) (*core.Judgment, error) {
	prompt := buildAnalysisPrompt(query, candidate)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		a.logger.Error("analysis call failed", "grant", candidate.Grant.Title, "err", err)
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	if len(response.Choices) < 1 {
		return nil, ai.ErrUnparsableResponse
	}

	responseText := stripCodeFences(response.Choices[0].Content)
	responseText = repairJSON(responseText)

	var analysis matchAnalysis
	if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
		a.logger.Warn("error parsing analysis response",
			"grant", candidate.Grant.Title,
			"response", responseText,
			"err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrUnparsableResponse, err)
	}

	judgment := &core.Judgment{
		MatchScore:     clampScore(analysis.MatchScore),
		Reasoning:      analysis.Reasoning,
		WhyFits:        analysis.WhyFits,
		Concerns:       analysis.Concerns,
		Recommendation: core.Recommendation(analysis.Recommendation),
		WinProbability: clampProbability(analysis.WinProbability),
	}

	a.logger.Debug("analysis complete",
		"grant", candidate.Grant.Title,
		"score", judgment.MatchScore,
		"decision", judgment.Recommendation)

	return judgment, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampProbability(p float32) float32 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
