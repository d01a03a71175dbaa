package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hack4good-26/GrantAI/ai/mock"
	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
	"github.com/hack4good-26/GrantAI/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.GrantRepository {
	t.Helper()
	grantRepo, resultRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		resultRepo.Close()
		grantRepo.Close()
		backend.Close()
	})
	return grantRepo
}

func TestNewPipeline(t *testing.T) {
	grantRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		pipeline, err := NewPipeline(grantRepo, provider)
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("missing repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.ErrorIs(t, err, ErrGrantRepositoryRequired)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := NewPipeline(grantRepo, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestIngestAndWait(t *testing.T) {
	grantRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(grantRepo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	grants := []*core.Grant{
		{Title: "Rural Broadband Fund", Description: "Expands internet access"},
		{Title: "Clean Water Initiative", Description: "Water infrastructure grants"},
	}

	added, err := pipeline.IngestAndWait(ctx, grants...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	// Every ingested grant is embedded and searchable
	for _, grant := range added {
		stored, err := grantRepo.GetGrant(ctx, grant.Id)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.Vector, "grant %q should have an embedding", stored.Title)
	}
}

func TestIngestAsyncEmbeds(t *testing.T) {
	grantRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(grantRepo, provider, WithPoolSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	added, err := pipeline.Ingest(ctx, &core.Grant{Title: "Arts Education Grant", Description: "Funds school arts programs"})
	require.NoError(t, err)
	require.Len(t, added, 1)

	// Embedding happens asynchronously; poll until it lands
	require.Eventually(t, func() bool {
		stored, err := grantRepo.GetGrant(ctx, added[0].Id)
		if err != nil {
			return false
		}
		return len(stored.Vector) > 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestIngestValidation(t *testing.T) {
	grantRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(grantRepo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	// A grant without a title fails the whole batch before any write
	_, err = pipeline.Ingest(ctx,
		&core.Grant{Title: "Valid Grant", Description: "fine"},
		&core.Grant{Description: "missing title"},
	)
	assert.ErrorIs(t, err, core.ErrEmptyGrantTitle)

	all, err := grantRepo.GetAllGrants(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestEmbedderFailureDoesNotFailIngestion(t *testing.T) {
	grantRepo := setupTestRepository(t)
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
		return nil, errors.New("model unavailable")
	}

	pipeline, err := NewPipeline(grantRepo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	added, err := pipeline.Ingest(ctx, &core.Grant{Title: "Housing Fund", Description: "Affordable housing"})
	require.NoError(t, err)
	require.Len(t, added, 1)

	// The grant is stored even though embedding failed
	stored, err := grantRepo.GetGrant(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Housing Fund", stored.Title)
}

func TestIngestBatching(t *testing.T) {
	grantRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(grantRepo, provider, WithBatchSize(3))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	grants := make([]*core.Grant, 10)
	for i := range grants {
		grants[i] = &core.Grant{
			Title:       fmt.Sprintf("Grant %02d", i),
			Description: fmt.Sprintf("Description %d", i),
		}
	}

	added, err := pipeline.IngestAndWait(ctx, grants...)
	require.NoError(t, err)
	require.Len(t, added, 10)

	for _, grant := range added {
		stored, err := grantRepo.GetGrant(ctx, grant.Id)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.Vector)
	}
}

func TestEmbeddingText(t *testing.T) {
	grant := &core.Grant{
		Title:       "Youth Sports Fund",
		Description: "Funds youth sports leagues",
		WhoCanApply: "Nonprofits",
	}

	text := EmbeddingText(grant)
	assert.Contains(t, text, "Youth Sports Fund")
	assert.Contains(t, text, "Funds youth sports leagues")
	assert.Contains(t, text, "Nonprofits")

	// Title-only grants still embed something
	assert.Equal(t, "Bare Grant", EmbeddingText(&core.Grant{Title: "Bare Grant"}))
}
