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


package core

import (
	"fmt"
	"strings"
)

// ValidateQuery validates a Query according to domain rules.
//
// Validation rules:
//   - Description must not be empty or whitespace-only
//   - EstimatedCost, when present, must be positive
//   - TimelineMonths, when present, must be positive
//   - KPICount, when present, must not be negative
func ValidateQuery(query *Query) error {
	if query == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if strings.TrimSpace(query.Description) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyDescription)
	}

	if query.EstimatedCost != nil && *query.EstimatedCost <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrNegativeCost)
	}

	if query.TimelineMonths != nil && *query.TimelineMonths <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrNegativeTimeline)
	}

	if query.KPICount != nil && *query.KPICount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrNegativeKPICount)
	}

	return nil
}

// ValidateGrant validates a Grant according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//
// NOT validated (populated by ingestion):
//   - Vector (can be empty until the embedding worker runs)
//   - ID (filled in from content hash on insert)
func ValidateGrant(grant *Grant) error {
	if grant == nil {
		return fmt.Errorf("%w: grant is nil", ErrInvalidGrant)
	}

	if grant.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrEmptyGrantTitle)
	}

	return nil
}

// ValidateJudgment validates a Judgment according to domain rules.
//
// Validation rules:
//   - MatchScore must be within [0, 100]
//   - WinProbability must be within [0, 1]
//   - Recommendation must be APPLY, WATCH, or SKIP
func ValidateJudgment(judgment *Judgment) error {
	if judgment == nil {
		return fmt.Errorf("%w: judgment is nil", ErrInvalidJudgment)
	}

	if judgment.MatchScore < 0 || judgment.MatchScore > 100 {
		return fmt.Errorf("%w: %w", ErrInvalidJudgment, ErrMatchScoreOutOfRange)
	}

	if judgment.WinProbability < 0 || judgment.WinProbability > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidJudgment, ErrWinProbabilityOutOfRange)
	}

	if err := ValidateRecommendation(judgment.Recommendation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJudgment, err)
	}

	return nil
}

// ValidateRecommendation validates that a Recommendation has a known value.
func ValidateRecommendation(recommendation Recommendation) error {
	switch recommendation {
	case RecommendationApply, RecommendationWatch, RecommendationSkip:
		return nil
	default:
		return fmt.Errorf("%w: value %q", ErrInvalidRecommendation, recommendation)
	}
}
