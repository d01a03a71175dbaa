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


package ai

import "errors"

var (
	// ErrNotConfigured indicates a missing or placeholder credential.
	// It is distinguishable from transient transport failures so callers
	// can report a configuration problem instead of retrying.
	ErrNotConfigured = errors.New("ai provider not configured")

	// ErrEmptyEmbedding indicates the embedding provider responded
	// without a vector.
	ErrEmptyEmbedding = errors.New("provider returned no embedding")

	// ErrUnparsableResponse indicates the judgment provider returned
	// output that could not be parsed into the expected shape.
	ErrUnparsableResponse = errors.New("unparsable provider response")

	// ErrNoSelection indicates the filter call returned no usable indices.
	ErrNoSelection = errors.New("filter returned no selection")
)
