// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package catalog provides an immutable in-memory view of the movie catalog
// and model artifacts.
//
// The ranking pipeline reads catalog data on every request while the
// underlying store changes rarely (artifact imports, rating submissions).
// A Snapshot is built once from the store and never mutated; the Provider
// swaps in fresh snapshots atomically, so a request observes one consistent
// catalog state from start to finish.
package catalog

import (
	"sort"
	"time"

	"github.com/fairlens/fairlens/internal/models"
	"github.com/fairlens/fairlens/internal/store"
)

// Snapshot is an immutable, internally consistent view of the catalog.
// All methods are safe for concurrent use; none of them allocate on the
// hot path beyond what they return.
type Snapshot struct {
	movies     map[string]models.Movie
	ordered    []models.Movie
	vectors    map[string][]float64
	popularity map[string]int64
	maxPop     int64
	genreShare map[string]float64
	builtAt    time.Time
}

// NewSnapshot builds a snapshot from store data. The movie list is sorted by
// ID so iteration order is deterministic across rebuilds.
func NewSnapshot(data *store.SnapshotData) *Snapshot {
	s := &Snapshot{
		movies:     make(map[string]models.Movie, len(data.Movies)),
		ordered:    make([]models.Movie, len(data.Movies)),
		vectors:    data.Vectors,
		popularity: data.Popularity,
		genreShare: make(map[string]float64),
		builtAt:    time.Now(),
	}

	copy(s.ordered, data.Movies)
	sort.Slice(s.ordered, func(i, j int) bool {
		return s.ordered[i].ID < s.ordered[j].ID
	})

	genreCounts := make(map[string]int)
	for _, movie := range s.ordered {
		s.movies[movie.ID] = movie
		for _, genre := range movie.Genres {
			genreCounts[genre]++
		}
	}

	if n := len(s.ordered); n > 0 {
		for genre, count := range genreCounts {
			s.genreShare[genre] = float64(count) / float64(n)
		}
	}

	for _, count := range data.Popularity {
		if count > s.maxPop {
			s.maxPop = count
		}
	}

	return s
}

// Movie looks up catalog metadata by ID.
func (s *Snapshot) Movie(id string) (models.Movie, bool) {
	movie, ok := s.movies[id]
	return movie, ok
}

// Movies returns all catalog movies sorted by ID. The returned slice is
// shared; callers must not modify it.
func (s *Snapshot) Movies() []models.Movie {
	return s.ordered
}

// Vector returns the latent vector for a movie, or false if offline training
// produced none for it.
func (s *Snapshot) Vector(id string) ([]float64, bool) {
	vector, ok := s.vectors[id]
	return vector, ok
}

// Popularity returns the global rating count for a movie. Unknown movies
// have zero popularity.
func (s *Snapshot) Popularity(id string) int64 {
	return s.popularity[id]
}

// NormalizedPopularity returns the movie's rating count scaled by the most
// popular movie in the catalog, in [0,1]. Zero when the catalog has no
// popularity data at all.
func (s *Snapshot) NormalizedPopularity(id string) float64 {
	if s.maxPop == 0 {
		return 0
	}
	return float64(s.popularity[id]) / float64(s.maxPop)
}

// GenreShare returns the fraction of catalog movies tagged with the genre,
// in [0,1]. Unknown genres have zero share.
func (s *Snapshot) GenreShare(genre string) float64 {
	return s.genreShare[genre]
}

// Len returns the number of movies in the catalog.
func (s *Snapshot) Len() int {
	return len(s.ordered)
}

// BuiltAt returns when the snapshot was constructed.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
