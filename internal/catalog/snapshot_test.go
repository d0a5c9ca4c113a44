// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package catalog

import (
	"context"
	"testing"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/models"
	"github.com/fairlens/fairlens/internal/store"
)

func testSnapshotData() *store.SnapshotData {
	return &store.SnapshotData{
		Movies: []models.Movie{
			{ID: "m3", Title: "Heat", Genres: []string{"Crime", "Drama"}},
			{ID: "m1", Title: "Alien", Genres: []string{"Sci-Fi", "Horror"}},
			{ID: "m2", Title: "Parasite", Genres: []string{"Drama"}},
			{ID: "m4", Title: "Okja", Genres: nil},
		},
		Vectors: map[string][]float64{
			"m1": {1, 0},
			"m2": {0, 1},
		},
		Popularity: map[string]int64{
			"m1": 200,
			"m2": 50,
		},
	}
}

func TestSnapshotMoviesSortedByID(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(testSnapshotData())

	movies := snap.Movies()
	if len(movies) != 4 {
		t.Fatalf("expected 4 movies, got %d", len(movies))
	}
	for i := 1; i < len(movies); i++ {
		if movies[i-1].ID >= movies[i].ID {
			t.Errorf("movies not sorted: %s before %s", movies[i-1].ID, movies[i].ID)
		}
	}
}

func TestSnapshotLookups(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(testSnapshotData())

	movie, ok := snap.Movie("m2")
	if !ok || movie.Title != "Parasite" {
		t.Errorf("Movie(m2) = %+v, %v", movie, ok)
	}
	if _, ok := snap.Movie("missing"); ok {
		t.Error("expected miss for unknown movie")
	}

	vector, ok := snap.Vector("m1")
	if !ok || len(vector) != 2 {
		t.Errorf("Vector(m1) = %v, %v", vector, ok)
	}
	if _, ok := snap.Vector("m3"); ok {
		t.Error("expected no vector for m3")
	}
}

func TestSnapshotNormalizedPopularity(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(testSnapshotData())

	if got := snap.NormalizedPopularity("m1"); got != 1.0 {
		t.Errorf("expected most popular movie to normalize to 1.0, got %g", got)
	}
	if got := snap.NormalizedPopularity("m2"); got != 0.25 {
		t.Errorf("expected 50/200 = 0.25, got %g", got)
	}
	if got := snap.NormalizedPopularity("m3"); got != 0 {
		t.Errorf("expected zero popularity for unrated movie, got %g", got)
	}
}

func TestSnapshotNormalizedPopularityEmptyCatalog(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(&store.SnapshotData{
		Vectors:    map[string][]float64{},
		Popularity: map[string]int64{},
	})

	if got := snap.NormalizedPopularity("m1"); got != 0 {
		t.Errorf("expected zero with no popularity data, got %g", got)
	}
	if snap.Len() != 0 {
		t.Errorf("expected empty snapshot, got %d movies", snap.Len())
	}
}

func TestSnapshotGenreShare(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(testSnapshotData())

	// Drama appears on 2 of 4 movies
	if got := snap.GenreShare("Drama"); got != 0.5 {
		t.Errorf("expected Drama share 0.5, got %g", got)
	}
	// Sci-Fi appears on 1 of 4
	if got := snap.GenreShare("Sci-Fi"); got != 0.25 {
		t.Errorf("expected Sci-Fi share 0.25, got %g", got)
	}
	if got := snap.GenreShare("Musical"); got != 0 {
		t.Errorf("expected zero share for absent genre, got %g", got)
	}
}

func TestProviderRefreshSwapsSnapshot(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(config.StoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.PutMovie(ctx, &models.Movie{ID: "m1", Title: "Alien"}); err != nil {
		t.Fatalf("PutMovie failed: %v", err)
	}

	provider, err := NewProvider(ctx, s)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	first := provider.Current()
	if first.Len() != 1 {
		t.Fatalf("expected 1 movie in initial snapshot, got %d", first.Len())
	}

	if err := s.PutMovie(ctx, &models.Movie{ID: "m2", Title: "Heat"}); err != nil {
		t.Fatalf("PutMovie failed: %v", err)
	}

	// Old snapshot unaffected until refresh
	if provider.Current().Len() != 1 {
		t.Error("snapshot changed without refresh")
	}

	if err := provider.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if provider.Current().Len() != 2 {
		t.Errorf("expected 2 movies after refresh, got %d", provider.Current().Len())
	}

	// The first snapshot reference remains valid and unchanged
	if first.Len() != 1 {
		t.Error("old snapshot mutated by refresh")
	}
}
