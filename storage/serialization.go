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


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/hack4good-26/GrantAI/core"
)

// Stored values are JSON: the persisted judgment payload mirrors the
// provider's JSON shape and the HTTP response body, so one
// representation serves the whole path.

// MarshalID serializes an ID to big-endian bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("%w: id too short", ErrSerializationFailed)
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// MarshalGrant serializes a Grant to bytes.
func MarshalGrant(grant *core.Grant) ([]byte, error) {
	data, err := json.Marshal(grant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalGrant deserializes a Grant from bytes.
func UnmarshalGrant(data []byte) (*core.Grant, error) {
	var grant core.Grant
	if err := json.Unmarshal(data, &grant); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &grant, nil
}

// MarshalMatchResult serializes a MatchResult to bytes.
func MarshalMatchResult(result *core.MatchResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalMatchResult deserializes a MatchResult from bytes.
func UnmarshalMatchResult(data []byte) (*core.MatchResult, error) {
	var result core.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &result, nil
}
