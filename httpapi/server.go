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


// Package httpapi provides the HTTP API for the grant matching service.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// GrantMatcher runs the matching pipeline for a funding request.
// Implemented by match.Matcher.
type GrantMatcher interface {
	Match(ctx context.Context, query *core.Query) (*core.MatchResult, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides HTTP endpoints for grant matching.
type Server struct {
	echo             *echo.Echo
	matcher          GrantMatcher
	grantRepository  storage.GrantRepository
	resultRepository storage.ResultRepository
	logger           *slog.Logger
	config           *Config
}

// NewServer creates a new HTTP server.
func NewServer(
	matcher GrantMatcher,
	grantRepository storage.GrantRepository,
	resultRepository storage.ResultRepository,
	logger *slog.Logger,
	cfg *Config,
) (*Server, error) {
	if matcher == nil {
		return nil, fmt.Errorf("matcher cannot be nil")
	}
	if grantRepository == nil {
		return nil, fmt.Errorf("grant repository cannot be nil")
	}
	if resultRepository == nil {
		return nil, fmt.Errorf("result repository cannot be nil")
	}
	if logger == nil {
		logger = slog.Default().With("component", "httpapi")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", duration,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	})

	s := &Server{
		echo:             e,
		matcher:          matcher,
		grantRepository:  grantRepository,
		resultRepository: resultRepository,
		logger:           logger,
		config:           cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check
	s.echo.GET("/health", s.handleHealth)

	s.echo.POST("/matching-requests", s.handleCreateMatch)
	s.echo.GET("/matching-requests", s.handleListMatches)
	s.echo.GET("/matching-requests/:id", s.handleGetMatch)
	s.echo.DELETE("/matching-requests", s.handleDeleteMatches)

	s.echo.GET("/grants", s.handleListGrants)
	s.echo.GET("/grants/:id", s.handleGetGrant)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
