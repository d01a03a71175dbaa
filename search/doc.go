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

// Package search provides direct catalog search over the grant database.
//
// The Searcher type implements a two-signal search algorithm that combines:
//   - Semantic search using vector embeddings
//   - Verbatim keyword matching with stop-word filtering
//
// Unlike the matching pipeline, catalog search involves no judgment calls:
// it ranks grants by embedding similarity, boosted when every keyword of
// the query appears verbatim in the grant text.
package search
