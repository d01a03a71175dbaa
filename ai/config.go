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

import (
	"fmt"
	"strings"
)

// placeholder tokens that indicate an unconfigured credential.
var placeholderTokens = map[string]bool{
	"":                  true,
	"your-api-key":      true,
	"your-api-key-here": true,
	"changeme":          true,
	"<api-key>":         true,
}

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// AnalystHost is the base URL for the judgment/analysis service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	AnalystHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// AnalystModel is the model identifier for filter and scoring calls.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	AnalystModel string

	// APIKey is the provider credential. Local OpenAI-compatible services
	// that skip authentication accept any non-placeholder value; use
	// "none" for those. A missing or placeholder key fails validation
	// with ErrNotConfigured.
	APIKey string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithAnalystHost sets the judgment service host URL.
func WithAnalystHost(host string) ConfigOption {
	return func(c *Config) {
		c.AnalystHost = host
	}
}

// WithHost sets both embedding and analyst hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.AnalystHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAnalystModel sets the judgment model identifier.
func WithAnalystModel(model string) ConfigOption {
	return func(c *Config) {
		c.AnalystModel = model
	}
}

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and analyst calls use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		AnalystHost:    defaultHost,
		EmbeddingModel: "embeddinggemma",
		AnalystModel:   "qwen2.5:3b",
		APIKey:         "none",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.AnalystHost != "" && !strings.HasSuffix(c.AnalystHost, "/v1") {
		c.AnalystHost = strings.TrimSuffix(c.AnalystHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// A missing or placeholder credential yields ErrNotConfigured so callers
// can distinguish misconfiguration from transient provider failures.
func (c *Config) Validate() error {
	c.Normalize()

	if placeholderTokens[strings.ToLower(strings.TrimSpace(c.APIKey))] {
		return fmt.Errorf("%w: APIKey is missing or a placeholder", ErrNotConfigured)
	}
	if c.EmbeddingHost == "" {
		return fmt.Errorf("%w: EmbeddingHost is required", ErrNotConfigured)
	}
	if c.AnalystHost == "" {
		return fmt.Errorf("%w: AnalystHost is required", ErrNotConfigured)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("%w: EmbeddingModel is required", ErrNotConfigured)
	}
	if c.AnalystModel == "" {
		return fmt.Errorf("%w: AnalystModel is required", ErrNotConfigured)
	}
	return nil
}
