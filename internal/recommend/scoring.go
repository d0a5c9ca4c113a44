// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package recommend

import (
	"math"

	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/models"
)

// ScoringEngine converts a user's rating vector into a raw relevance score
// for every eligible candidate.
type ScoringEngine struct {
	cfg Config
}

// NewScoringEngine creates a scoring engine with the given configuration.
func NewScoringEngine(cfg Config) *ScoringEngine {
	return &ScoringEngine{cfg: cfg}
}

// ScoreResult reports what the scoring stage did with the input ratings.
type ScoreResult struct {
	// ColdStart is true when the popularity prior ranked the candidates
	// because no usable profile could be built.
	ColdStart bool

	// SkippedRatings counts ratings dropped because the rated movie has no
	// latent vector. Recoverable; logged per movie.
	SkippedRatings int
}

// Score fills in baseScore for every candidate.
//
// For a usable rating set it synthesizes a user profile vector as the
// rating-weighted sum of latent vectors: each rating contributes with
// weight (value-3)/2, so loved movies (5) pull the profile toward them with
// weight 1, disliked movies (1) push it away with weight -1, and neutral
// ratings (3) contribute nothing. Candidate relevance is the cosine
// similarity between the profile and the candidate's latent vector.
//
// With fewer usable ratings than the cold-start threshold (or a degenerate
// zero profile), every candidate's baseScore falls back to its normalized
// global popularity instead.
func (e *ScoringEngine) Score(view CatalogView, ratings []models.Rating, cands []*candidate, userID string) ScoreResult {
	profile, usable, skipped := e.buildProfile(view, ratings, userID)

	result := ScoreResult{SkippedRatings: skipped}
	if skipped > 0 {
		metrics.RecommendSkippedRatings.Add(float64(skipped))
	}

	if usable < e.cfg.ColdStartMinRatings || vectorNorm(profile) == 0 {
		result.ColdStart = true
		metrics.RecommendColdStarts.Inc()
		for _, c := range cands {
			c.baseScore = view.NormalizedPopularity(c.movie.ID)
		}
		return result
	}

	for _, c := range cands {
		vector, ok := view.Vector(c.movie.ID)
		if !ok {
			// No trained vector; relevance stays neutral and the movie
			// remains reachable through the fairness boost.
			c.baseScore = 0
			continue
		}
		c.baseScore = cosineSimilarity(profile, vector)
	}
	return result
}

// buildProfile synthesizes the user profile vector from rated movies'
// latent vectors. Returns the profile, the number of ratings that
// contributed, and the number skipped for missing vectors.
func (e *ScoringEngine) buildProfile(view CatalogView, ratings []models.Rating, userID string) (profile []float64, usable, skipped int) {
	log := logging.WithComponent("scoring")

	for i := range ratings {
		r := &ratings[i]
		weight := ratingWeight(r.Value)
		if weight == 0 {
			continue // neutral rating carries no signal
		}

		vector, ok := view.Vector(r.MovieID)
		if !ok {
			skipped++
			log.Warn().
				Str("user_id", userID).
				Str("movie_id", r.MovieID).
				Msg("rated movie missing from latent store, skipping")
			continue
		}

		if profile == nil {
			profile = make([]float64, len(vector))
		}
		if len(vector) != len(profile) {
			skipped++
			log.Warn().
				Str("user_id", userID).
				Str("movie_id", r.MovieID).
				Int("got_dims", len(vector)).
				Int("want_dims", len(profile)).
				Msg("latent vector dimension mismatch, skipping")
			continue
		}

		for d := range vector {
			profile[d] += weight * vector[d]
		}
		usable++
	}

	return profile, usable, skipped
}

// ratingWeight maps a 1-5 rating to a signed profile weight in [-1,1].
// Ratings of 4-5 attract (liked), 1-2 repel (disliked), 3 is neutral.
func ratingWeight(value int) float64 {
	return float64(value-3) / 2
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is zero or the dimensions disagree.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// vectorNorm returns the Euclidean norm of v.
func vectorNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
