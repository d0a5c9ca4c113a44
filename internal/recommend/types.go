// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package recommend

import (
	"context"

	"github.com/fairlens/fairlens/internal/models"
)

// CatalogView is the read-only catalog state a single ranking request
// observes. Implementations must be immutable for the lifetime of the
// request; catalog.Snapshot satisfies this interface.
type CatalogView interface {
	// Movie looks up catalog metadata by ID.
	Movie(id string) (models.Movie, bool)

	// Movies returns all catalog movies in a deterministic order.
	Movies() []models.Movie

	// Vector returns the latent vector for a movie, if trained.
	Vector(id string) ([]float64, bool)

	// NormalizedPopularity returns the movie's global rating count scaled
	// to [0,1] by the catalog maximum.
	NormalizedPopularity(id string) float64

	// GenreShare returns the fraction of catalog movies tagged with the
	// genre, in [0,1].
	GenreShare(genre string) float64
}

// Composer produces the natural-language explanation for one ranked
// candidate. Implementations must never fail the request: a composer that
// uses a generative backend falls back to a deterministic template on error.
type Composer interface {
	Compose(ctx context.Context, cand *models.ScoredCandidate, theta float64, likedGenres []string) models.Explanation
}

// candidate is the engine's internal per-request working state for one
// eligible movie. Normalized signal values are filled in stage by stage.
type candidate struct {
	movie models.Movie

	baseScore  float64
	relNorm    float64
	popRaw     float64
	popNorm    float64
	fairRaw    float64
	fairNorm   float64
	finalScore float64

	breakdown models.ScoreBreakdown
}
