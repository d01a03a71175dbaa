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


// Package match implements the grant matching pipeline.
//
// The Matcher type runs a multi-stage process for each funding request:
//   - Retrieval of candidate grants by embedding similarity
//   - A single holistic model call that filters candidates down to the
//     ones worth a full analysis
//   - Concurrent per-grant analysis producing scored judgments
//   - Deterministic ranking and persistence of the final result
//
// The pipeline degrades rather than fails: a filter failure falls back
// to retrieval order, and an analysis failure yields a similarity-based
// judgment, so any valid query with at least one embedded grant in the
// catalog produces a result.
package match
