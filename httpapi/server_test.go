package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hack4good-26/GrantAI/ai/mock"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/match"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/hack4good-26/GrantAI/storage/badger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server     *Server
	grantRepo  storage.GrantRepository
	resultRepo storage.ResultRepository
	provider   *mock.MockProvider
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	grantRepo, resultRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	matcher, err := match.NewMatcher(grantRepo, resultRepo, provider)
	require.NoError(t, err)

	server, err := NewServer(matcher, grantRepo, resultRepo, nil, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		matcher.Release()
		resultRepo.Close()
		grantRepo.Close()
		backend.Close()
	})

	return &testEnv{server: server, grantRepo: grantRepo, resultRepo: resultRepo, provider: provider}
}

func seedCatalog(t *testing.T, env *testEnv, count int) []*core.Grant {
	t.Helper()
	grants := make([]*core.Grant, count)
	for i := range grants {
		grants[i] = &core.Grant{
			Title:       fmt.Sprintf("Grant %02d", i),
			Description: fmt.Sprintf("Description %d", i),
			Vector:      []float32{1, float32(i) * 0.1, 0},
		}
	}
	added, err := env.grantRepo.AddGrants(context.Background(), grants...)
	require.NoError(t, err)
	return added
}

func TestNewServer(t *testing.T) {
	env := setupTestServer(t)

	t.Run("uses defaults when config is nil", func(t *testing.T) {
		assert.Equal(t, "localhost", env.server.config.Host)
		assert.Equal(t, 8080, env.server.config.Port)
	})

	t.Run("returns error when matcher is nil", func(t *testing.T) {
		_, err := NewServer(nil, env.grantRepo, env.resultRepo, nil, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "matcher cannot be nil")
	})

	t.Run("returns error when repositories are nil", func(t *testing.T) {
		matcher := env.server.matcher
		_, err := NewServer(matcher, nil, env.resultRepo, nil, nil)
		assert.Error(t, err)

		_, err = NewServer(matcher, env.grantRepo, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestHandleHealth(t *testing.T) {
	env := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	env.server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleCreateMatch(t *testing.T) {
	t.Run("returns ranked result", func(t *testing.T) {
		env := setupTestServer(t)
		seedCatalog(t, env, 8)

		body, _ := json.Marshal(MatchRequest{Description: "after-school tutoring program"})
		req := httptest.NewRequest(http.MethodPost, "/matching-requests", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var result core.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.NotZero(t, result.Id)
		assert.NotEmpty(t, result.RecommendedGrants)
		assert.LessOrEqual(t, len(result.RecommendedGrants), match.DefaultTargetRecommendations)

		// Scores are in descending order
		for i := 1; i < len(result.RecommendedGrants); i++ {
			assert.GreaterOrEqual(t,
				result.RecommendedGrants[i-1].MatchScore,
				result.RecommendedGrants[i].MatchScore)
		}
	})

	t.Run("empty description is a 400", func(t *testing.T) {
		env := setupTestServer(t)

		body, _ := json.Marshal(MatchRequest{Description: "  "})
		req := httptest.NewRequest(http.MethodPost, "/matching-requests", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty catalog is a 404", func(t *testing.T) {
		env := setupTestServer(t)

		body, _ := json.Marshal(MatchRequest{Description: "community garden project"})
		req := httptest.NewRequest(http.MethodPost, "/matching-requests", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		env := setupTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/matching-requests", bytes.NewReader([]byte("{not json")))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetMatch(t *testing.T) {
	env := setupTestServer(t)
	grants := seedCatalog(t, env, 3)

	stored, err := env.resultRepo.AddResult(context.Background(), &core.MatchResult{
		Description: "youth mentoring program",
		RecommendedGrants: []core.Judgment{
			{GrantId: grants[0].Id, MatchScore: 90, Recommendation: core.RecommendationApply},
			{GrantId: core.ID(424242), MatchScore: 50, Recommendation: core.RecommendationWatch},
		},
	})
	require.NoError(t, err)

	t.Run("hydrates grants", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/matching-requests/%d", stored.Id), nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var result core.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.RecommendedGrants, 2)

		// First judgment's grant exists and is hydrated without its vector
		require.NotNil(t, result.RecommendedGrants[0].Grant)
		assert.Equal(t, grants[0].Title, result.RecommendedGrants[0].Grant.Title)
		assert.Empty(t, result.RecommendedGrants[0].Grant.Vector)

		// Second judgment's grant was deleted; the judgment survives
		assert.Nil(t, result.RecommendedGrants[1].Grant)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/matching-requests/999999", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/matching-requests/abc", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleListAndDeleteMatches(t *testing.T) {
	env := setupTestServer(t)

	for i := 0; i < 3; i++ {
		_, err := env.resultRepo.AddResult(context.Background(), &core.MatchResult{
			Description: fmt.Sprintf("request %d", i),
		})
		require.NoError(t, err)
	}

	t.Run("list returns newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/matching-requests?limit=2", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var results []*core.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "request 2", results[0].Description)
	})

	t.Run("invalid limit is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/matching-requests?limit=zero", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete clears history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/matching-requests", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DeleteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Deleted)

		// History is now empty
		req = httptest.NewRequest(http.MethodGet, "/matching-requests", nil)
		rec = httptest.NewRecorder()
		env.server.echo.ServeHTTP(rec, req)

		var results []*core.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		assert.Empty(t, results)
	})
}

func TestHandleGrants(t *testing.T) {
	env := setupTestServer(t)
	grants := seedCatalog(t, env, 2)

	t.Run("list omits vectors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/grants", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var listed []*core.Grant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		require.Len(t, listed, 2)
		for _, grant := range listed {
			assert.Empty(t, grant.Vector)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/grants/%d", grants[0].Id), nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var grant core.Grant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grant))
		assert.Equal(t, grants[0].Title, grant.Title)
		assert.Empty(t, grant.Vector)
	})

	t.Run("unknown grant is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/grants/123456789", nil)
		rec := httptest.NewRecorder()

		env.server.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
