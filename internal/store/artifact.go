// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/models"
)

// Artifact is the JSON model artifact produced by offline training.
//
// Format:
//
//	{
//	  "movies":     [ {"movie_id": "m1", "title": "...", "genres": ["Drama"]}, ... ],
//	  "vectors":    { "m1": [0.12, -0.4, ...], ... },
//	  "popularity": { "m1": 5821, ... }
//	}
//
// Movies without vectors are allowed (they are still rankable via the
// popularity prior); vectors without a movie entry are skipped on import.
type Artifact struct {
	Movies     []models.Movie       `json:"movies"`
	Vectors    map[string][]float64 `json:"vectors"`
	Popularity map[string]int64     `json:"popularity"`
}

// DecodeArtifact reads and validates an artifact from r.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var artifact Artifact
	if err := json.NewDecoder(r).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if len(artifact.Movies) == 0 {
		return nil, fmt.Errorf("artifact contains no movies")
	}
	for i := range artifact.Movies {
		if artifact.Movies[i].ID == "" {
			return nil, fmt.Errorf("artifact movie at index %d missing movie_id", i)
		}
	}
	return &artifact, nil
}

// ImportArtifactFile imports the artifact at path into the store.
func (s *Store) ImportArtifactFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	artifact, err := DecodeArtifact(f)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}
	return s.ImportArtifact(ctx, artifact)
}

// ImportArtifact writes the artifact's movies, vectors, and popularity
// counts into the store. Vectors referencing unknown movies are skipped with
// a warning. Uses a write batch to keep large imports fast.
func (s *Store) ImportArtifact(ctx context.Context, artifact *Artifact) error {
	log := logging.WithComponent("store")

	known := make(map[string]struct{}, len(artifact.Movies))
	for i := range artifact.Movies {
		known[artifact.Movies[i].ID] = struct{}{}
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range artifact.Movies {
		movie := &artifact.Movies[i]
		data, err := json.Marshal(movie)
		if err != nil {
			return fmt.Errorf("marshal movie %s: %w", movie.ID, err)
		}
		if err := wb.Set([]byte(movieKeyPrefix+movie.ID), data); err != nil {
			return fmt.Errorf("batch movie %s: %w", movie.ID, err)
		}
	}

	skipped := 0
	for movieID, vector := range artifact.Vectors {
		if _, ok := known[movieID]; !ok {
			skipped++
			continue
		}
		data, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("marshal vector %s: %w", movieID, err)
		}
		if err := wb.Set([]byte(vectorKeyPrefix+movieID), data); err != nil {
			return fmt.Errorf("batch vector %s: %w", movieID, err)
		}
	}
	if skipped > 0 {
		log.Warn().Int("count", skipped).Msg("skipped vectors for movies not in artifact")
	}

	for movieID, count := range artifact.Popularity {
		if _, ok := known[movieID]; !ok {
			continue
		}
		data, err := json.Marshal(count)
		if err != nil {
			return fmt.Errorf("marshal popularity %s: %w", movieID, err)
		}
		if err := wb.Set([]byte(popularityKeyPrefix+movieID), data); err != nil {
			return fmt.Errorf("batch popularity %s: %w", movieID, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush artifact import: %w", err)
	}

	log.Info().
		Int("movies", len(artifact.Movies)).
		Int("vectors", len(artifact.Vectors)-skipped).
		Int("popularity", len(artifact.Popularity)).
		Msg("imported model artifact")

	return nil
}
