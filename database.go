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


package grantai

import (
	"log/slog"

	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/ai/openai"
	"github.com/hack4good-26/GrantAI/ingestion"
	"github.com/hack4good-26/GrantAI/match"
	"github.com/hack4good-26/GrantAI/search"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/hack4good-26/GrantAI/storage/badger"
)

// Database bundles the storage backend, repositories, and AI provider
// behind a single open/close lifecycle.
type Database struct {
	backend    *badger.Backend
	grantRepo  storage.GrantRepository
	resultRepo storage.ResultRepository
	provider   ai.AIProvider
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create grant repository
	grantRepo, err := badger.NewGrantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create result repository
	resultRepo, err := badger.NewResultRepository(backend)
	if err != nil {
		grantRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		resultRepo.Close()
		grantRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:    backend,
		grantRepo:  grantRepo,
		resultRepo: resultRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.resultRepo.Close(); err != nil {
		db.logger.Error("error closing result repository", "err", err)
		return err
	}
	if err := db.grantRepo.Close(); err != nil {
		db.logger.Error("error closing grant repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) GrantRepository() storage.GrantRepository {
	return db.grantRepo
}

func (db *Database) ResultRepository() storage.ResultRepository {
	return db.resultRepo
}

func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.grantRepo, db.provider, opts...)
}

func (db *Database) NewMatcher(opts ...match.Option) (*match.Matcher, error) {
	return match.NewMatcher(db.grantRepo, db.resultRepo, db.provider, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.grantRepo, db.provider, opts...)
}
