package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/hack4good-26/GrantAI/core"
	"github.com/hack4good-26/GrantAI/storage"
)

func TestGrantBasics(t *testing.T) {
	// Create in-memory repositories
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		resultRepo.Close()
		grantRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	grant := &core.Grant{
		Title:       "Community Health Fund",
		Description: "Supports community health initiatives",
		Status:      "ACTIVE",
	}

	added, err := grantRepo.AddGrants(ctx, grant)
	if err != nil {
		t.Fatalf("Failed to add grant: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 grant, got %d", len(added))
	}

	if added[0].Id != core.IDFromContent("Community Health Fund") {
		t.Fatal("Expected ID derived from title")
	}

	retrieved, err := grantRepo.GetGrant(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get grant: %v", err)
	}

	if retrieved.Description != "Supports community health initiatives" {
		t.Fatalf("Unexpected description: %q", retrieved.Description)
	}
}

func TestAddGrantsOverwritesByTitle(t *testing.T) {
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { resultRepo.Close(); grantRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first := &core.Grant{Title: "Arts Grant", Description: "v1", Vector: []float32{1, 0, 0}}
	if _, err := grantRepo.AddGrants(ctx, first); err != nil {
		t.Fatalf("Failed to add grant: %v", err)
	}

	// Re-ingest the same title without a vector
	second := &core.Grant{Title: "Arts Grant", Description: "v2"}
	if _, err := grantRepo.AddGrants(ctx, second); err != nil {
		t.Fatalf("Failed to re-add grant: %v", err)
	}

	all, err := grantRepo.GetAllGrants(ctx)
	if err != nil {
		t.Fatalf("Failed to get all grants: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 grant after overwrite, got %d", len(all))
	}
	if all[0].Description != "v2" {
		t.Fatalf("Expected updated description, got %q", all[0].Description)
	}
	// The prior embedding survives a re-ingest without one
	if len(all[0].Vector) != 3 {
		t.Fatalf("Expected preserved vector, got %v", all[0].Vector)
	}
	if !all[0].InsertedAt.Equal(first.InsertedAt) {
		t.Fatal("Expected original insertion time to be preserved")
	}
}

func TestUpdateGrantsNotFound(t *testing.T) {
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { resultRepo.Close(); grantRepo.Close(); backend.Close() }()

	ctx := context.Background()

	missing := &core.Grant{Id: 12345, Title: "Ghost Grant"}
	_, err = grantRepo.UpdateGrants(ctx, missing)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetGrantsSkipsMissing(t *testing.T) {
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { resultRepo.Close(); grantRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := grantRepo.AddGrants(ctx, &core.Grant{Title: "Real Grant", Description: "exists"})
	if err != nil {
		t.Fatalf("Failed to add grant: %v", err)
	}

	grants, err := grantRepo.GetGrants(ctx, added[0].Id, core.ID(999999))
	if err != nil {
		t.Fatalf("Failed to get grants: %v", err)
	}
	if len(grants) != 1 {
		t.Fatalf("Expected 1 grant, got %d", len(grants))
	}
}

func TestDeleteGrants(t *testing.T) {
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { resultRepo.Close(); grantRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := grantRepo.AddGrants(ctx, &core.Grant{Title: "Temporary Grant"})
	if err != nil {
		t.Fatalf("Failed to add grant: %v", err)
	}

	if err := grantRepo.DeleteGrants(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete grant: %v", err)
	}

	_, err = grantRepo.GetGrant(ctx, added[0].Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	if err := grantRepo.DeleteGrants(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestFindNearestOrdering(t *testing.T) {
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { resultRepo.Close(); grantRepo.Close(); backend.Close() }()

	ctx := context.Background()

	grants := []*core.Grant{
		{Title: "Exact Match", Vector: []float32{1, 0, 0}},
		{Title: "Orthogonal", Vector: []float32{0, 1, 0}},
		{Title: "Opposite", Vector: []float32{-1, 0, 0}},
		{Title: "Unembedded"},
	}
	if _, err := grantRepo.AddGrants(ctx, grants...); err != nil {
		t.Fatalf("Failed to add grants: %v", err)
	}

	hits, err := grantRepo.FindNearest(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Failed to find nearest: %v", err)
	}

	// Unembedded grants are excluded from the scan
	if len(hits) != 3 {
		t.Fatalf("Expected 3 hits, got %d", len(hits))
	}

	if hits[0].GrantId != core.IDFromContent("Exact Match") {
		t.Fatal("Expected exact match first")
	}
	if hits[2].GrantId != core.IDFromContent("Opposite") {
		t.Fatal("Expected opposite vector last")
	}

	if hits[0].Distance > 0.0001 {
		t.Fatalf("Expected near-zero distance for identical vector, got %f", hits[0].Distance)
	}
	if hits[1].Distance < 0.99 || hits[1].Distance > 1.01 {
		t.Fatalf("Expected distance ~1 for orthogonal vector, got %f", hits[1].Distance)
	}
	if hits[2].Distance < 1.99 {
		t.Fatalf("Expected distance ~2 for opposite vector, got %f", hits[2].Distance)
	}
}

func TestFindNearestLimit(t *testing.T) {
	grantRepo, resultRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { resultRepo.Close(); grantRepo.Close(); backend.Close() }()

	ctx := context.Background()

	for i, title := range []string{"A", "B", "C", "D", "E"} {
		g := &core.Grant{Title: title, Vector: []float32{1, float32(i) * 0.1, 0}}
		if _, err := grantRepo.AddGrants(ctx, g); err != nil {
			t.Fatalf("Failed to add grant: %v", err)
		}
	}

	hits, err := grantRepo.FindNearest(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Failed to find nearest: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}
	if hits[0].Distance > hits[1].Distance {
		t.Fatal("Expected hits ordered by ascending distance")
	}
}
