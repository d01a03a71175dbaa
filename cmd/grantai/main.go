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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	grantai "github.com/hack4good-26/GrantAI"
	"github.com/hack4good-26/GrantAI/ai"
	"github.com/hack4good-26/GrantAI/ai/openai"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/httpapi"
	"github.com/hack4good-26/GrantAI/reembed"
	"github.com/hack4good-26/GrantAI/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "grantai",
		Usage: "Grant matching service for funding requests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP matching service",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "HTTP listen host",
						Value: "localhost",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "HTTP listen port",
						Value: 8080,
					},
				}, aiFlags()...),
			},
			{
				Name:   "seed",
				Usage:  "Load grants from a JSON file and embed them",
				Action: seedCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON file containing an array of grants",
						Required: true,
					},
				}, aiFlags()...),
			},
			{
				Name:   "match",
				Usage:  "Run a one-off matching request and print the result",
				Action: matchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Usage:    "Project description to match against the catalog",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Project title",
					},
					&cli.Float64Flag{
						Name:  "cost",
						Usage: "Estimated project cost",
					},
					&cli.IntFlag{
						Name:  "timeline",
						Usage: "Project timeline in months",
					},
					&cli.IntFlag{
						Name:  "kpis",
						Usage: "Number of project KPIs",
					},
				}, aiFlags()...),
			},
			{
				Name:   "search",
				Usage:  "Search the grant catalog and print scored hits",
				Action: searchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Search query text",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results to return",
						Value: 10,
					},
				}, aiFlags()...),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed the whole grant catalog with a new embedding model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of grants to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N grants",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "clear-history",
				Usage:  "Delete all stored match results",
				Action: clearHistoryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags returns the flags shared by commands that talk to the model.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for embeddings and analysis",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "analyst-model",
			Usage: "Chat model name for filtering and analysis",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the model service",
			Value:   "none",
			EnvVars: []string{"GRANTAI_API_KEY"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAnalystModel(c.String("analyst-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
}

func openDatabase(c *cli.Context) (*grantai.Database, error) {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return grantai.NewDatabase(c.String("db"), grantai.WithAIConfig(aiConfig))
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	matcher, err := db.NewMatcher()
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}
	defer matcher.Release()

	server, err := httpapi.NewServer(
		matcher,
		db.GrantRepository(),
		db.ResultRepository(),
		slog.Default().With("component", "httpapi"),
		&httpapi.Config{
			Host: c.String("host"),
			Port: c.Int("port"),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func seedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var grants []*core.Grant
	if err := json.Unmarshal(data, &grants); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(grants) == 0 {
		return fmt.Errorf("seed file contains no grants")
	}

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	added, err := pipeline.IngestAndWait(c.Context, grants...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Seeded %d grants into %s\n", len(added), c.String("db"))
	return nil
}

func matchCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	matcher, err := db.NewMatcher()
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}
	defer matcher.Release()

	query := &core.Query{
		Title:       c.String("title"),
		Description: c.String("description"),
	}
	if c.IsSet("cost") {
		cost := c.Float64("cost")
		query.EstimatedCost = &cost
	}
	if c.IsSet("timeline") {
		timeline := c.Int("timeline")
		query.TimelineMonths = &timeline
	}
	if c.IsSet("kpis") {
		kpis := c.Int("kpis")
		query.KPICount = &kpis
	}

	result, err := matcher.Match(c.Context, query)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func searchCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	hits, err := searcher.FindSimilar(c.Context, c.String("query"), c.Int("max-hits"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No grants found")
		return nil
	}

	for i, hit := range hits {
		fmt.Printf("%2d. [%.2f] %s\n", i+1, hit.Score, hit.Grant.Title)
		if hit.Grant.URL != "" {
			fmt.Printf("    %s\n", hit.Grant.URL)
		}
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	// Open database
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewGrantRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		// Analyst values are not needed for reembedding
		ai.WithAnalystHost(c.String("embedding-host")),
		ai.WithAnalystModel("dummy"),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func clearHistoryCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewResultRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	deleted, err := repo.DeleteAllResults(context.Background())
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Deleted %d match results\n", deleted)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
