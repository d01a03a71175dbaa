package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/match"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/labstack/echo/v4"
)

const defaultListLimit = 20

// MatchRequest is the request body for POST /matching-requests.
type MatchRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedCost  *float64 `json:"estimated_cost"`
	TimelineMonths *int     `json:"timeline_months"`
	KPICount       *int     `json:"kpi_count"`
}

// DeleteResponse is the response body for DELETE /matching-requests.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleCreateMatch runs the matching pipeline for a funding request.
func (s *Server) handleCreateMatch(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid match request", "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	query := &core.Query{
		Title:          req.Title,
		Description:    req.Description,
		EstimatedCost:  req.EstimatedCost,
		TimelineMonths: req.TimelineMonths,
		KPICount:       req.KPICount,
	}

	result, err := s.matcher.Match(c.Request().Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidQuery):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, match.ErrNoCandidates):
			return echo.NewHTTPError(http.StatusNotFound, "no matching grants found")
		default:
			s.logger.Error("match failed", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "matching failed")
		}
	}

	return c.JSON(http.StatusOK, result)
}

// handleGetMatch returns a stored match result with its grants hydrated.
func (s *Server) handleGetMatch(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid result id")
	}

	result, err := s.resultRepository.GetResult(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "result not found")
		}
		s.logger.Error("error retrieving result", "id", id, "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve result")
	}

	s.hydrateResult(c, result)
	return c.JSON(http.StatusOK, result)
}

// handleListMatches returns the most recent match results.
func (s *Server) handleListMatches(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	results, err := s.resultRepository.GetRecentResults(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error("error listing results", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list results")
	}

	if results == nil {
		results = []*core.MatchResult{}
	}
	return c.JSON(http.StatusOK, results)
}

// handleDeleteMatches clears the match history.
func (s *Server) handleDeleteMatches(c echo.Context) error {
	deleted, err := s.resultRepository.DeleteAllResults(c.Request().Context())
	if err != nil {
		s.logger.Error("error clearing results", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear results")
	}

	return c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

// handleListGrants returns the grant catalog without embeddings.
func (s *Server) handleListGrants(c echo.Context) error {
	grants, err := s.grantRepository.GetAllGrants(c.Request().Context())
	if err != nil {
		s.logger.Error("error listing grants", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list grants")
	}

	views := make([]*core.Grant, len(grants))
	for i, grant := range grants {
		views[i] = withoutVector(grant)
	}
	return c.JSON(http.StatusOK, views)
}

// handleGetGrant returns a single grant without its embedding.
func (s *Server) handleGetGrant(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid grant id")
	}

	grant, err := s.grantRepository.GetGrant(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "grant not found")
		}
		s.logger.Error("error retrieving grant", "id", id, "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve grant")
	}

	return c.JSON(http.StatusOK, withoutVector(grant))
}

// hydrateResult attaches the full grant record to each judgment.
// Grants deleted since the match was stored are simply left unhydrated.
func (s *Server) hydrateResult(c echo.Context, result *core.MatchResult) {
	for i := range result.RecommendedGrants {
		grant, err := s.grantRepository.GetGrant(c.Request().Context(), result.RecommendedGrants[i].GrantId)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("error hydrating grant", "grantId", result.RecommendedGrants[i].GrantId, "err", err)
			}
			continue
		}
		result.RecommendedGrants[i].Grant = withoutVector(grant)
	}
}

// withoutVector copies a grant, dropping the embedding from API output.
func withoutVector(grant *core.Grant) *core.Grant {
	view := *grant
	view.Vector = nil
	return &view
}

func parseID(raw string) (core.ID, error) {
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return core.ID(parsed), nil
}
