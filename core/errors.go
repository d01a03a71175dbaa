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

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuery indicates a Query failed validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidGrant indicates a Grant failed validation.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrInvalidJudgment indicates a Judgment failed validation.
	ErrInvalidJudgment = errors.New("invalid judgment")

	// ErrEmptyDescription indicates the Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrEmptyGrantTitle indicates the grant Title field is empty.
	ErrEmptyGrantTitle = errors.New("grant title cannot be empty")

	// ErrNegativeCost indicates EstimatedCost is zero or negative.
	ErrNegativeCost = errors.New("estimated cost must be positive")

	// ErrNegativeTimeline indicates TimelineMonths is zero or negative.
	ErrNegativeTimeline = errors.New("timeline months must be positive")

	// ErrNegativeKPICount indicates KPICount is negative.
	ErrNegativeKPICount = errors.New("kpi count cannot be negative")

	// ErrMatchScoreOutOfRange indicates MatchScore is outside [0, 100].
	ErrMatchScoreOutOfRange = errors.New("match score must be between 0 and 100")

	// ErrWinProbabilityOutOfRange indicates WinProbability is outside [0, 1].
	ErrWinProbabilityOutOfRange = errors.New("win probability must be between 0 and 1")

	// ErrInvalidRecommendation indicates an unknown Recommendation value.
	ErrInvalidRecommendation = errors.New("invalid recommendation")
)
