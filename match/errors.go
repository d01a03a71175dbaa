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

import "errors"

var (
	// ErrGrantRepositoryRequired is returned when a grant repository is not provided.
	ErrGrantRepositoryRequired = errors.New("grant repository required")

	// ErrResultRepositoryRequired is returned when a result repository is not provided.
	ErrResultRepositoryRequired = errors.New("result repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoCandidates is returned when retrieval finds no embedded grants
	// for the query. The caller should report this to the user rather
	// than retry.
	ErrNoCandidates = errors.New("no candidate grants found")
)
