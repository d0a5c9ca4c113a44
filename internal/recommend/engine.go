// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/models"
)

// Validation errors surfaced to the caller as input errors.
var (
	// ErrInvalidTopK means top_k is negative or exceeds the configured max.
	ErrInvalidTopK = errors.New("top_k out of range")

	// ErrInvalidRating wraps a malformed entry in the ratings payload.
	ErrInvalidRating = errors.New("invalid rating")
)

// Request is one ranking invocation.
type Request struct {
	UserID  string
	Ratings []models.Rating

	// Theta is the personalization parameter. Out-of-range values are
	// clamped to [0,1], not rejected.
	Theta float64

	// TopK is the number of recommendations wanted; 0 means the configured
	// default.
	TopK int
}

// Result is the ranked, explained output of one pipeline invocation.
type Result struct {
	Recommendations []models.Recommendation

	// Candidates carries the score breakdown for each returned
	// recommendation, in the same order.
	Candidates []models.ScoredCandidate

	// Theta is the clamped personalization parameter that was applied.
	Theta float64

	// Tier is the explanation style tier selected by theta.
	Tier models.StyleTier

	ColdStart      bool
	SkippedRatings int
}

// Pipeline orchestrates scoring, bias combination, and explanation
// composition. It holds no per-request state; a single Pipeline serves
// concurrent requests.
type Pipeline struct {
	cfg      Config
	scorer   *ScoringEngine
	combiner *BiasCombiner
	composer Composer
}

// NewPipeline creates the pipeline. The composer must not be nil; use
// explain.NewComposer(nil) for template-only explanations.
func NewPipeline(cfg Config, composer Composer) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	if composer == nil {
		return nil, fmt.Errorf("pipeline requires a composer")
	}
	return &Pipeline{
		cfg:      cfg,
		scorer:   NewScoringEngine(cfg),
		combiner: NewBiasCombiner(cfg),
		composer: composer,
	}, nil
}

// Recommend runs the full pipeline against one immutable catalog view.
//
// Deterministic for identical (ratings, theta, view, top_k) inputs, except
// for generative explanation text when a live text backend is wired in.
// Returns an empty result, not an error, when the user has rated every
// movie in the catalog.
func (p *Pipeline) Recommend(ctx context.Context, view CatalogView, req Request) (*Result, error) {
	k, err := p.resolveTopK(req.TopK)
	if err != nil {
		return nil, err
	}
	for i := range req.Ratings {
		if err := req.Ratings[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRating, err)
		}
	}
	ratings := upsertRatings(req.Ratings)

	theta := ClampTheta(req.Theta)
	tier := models.TierForTheta(theta)
	metrics.RecommendRequests.Inc()

	rated := make(map[string]struct{}, len(ratings))
	for i := range ratings {
		rated[ratings[i].MovieID] = struct{}{}
	}

	cands := p.eligibleCandidates(view, rated)
	metrics.RecommendCandidates.Observe(float64(len(cands)))

	result := &Result{Theta: theta, Tier: tier}
	if len(cands) == 0 {
		// User has rated the whole catalog; empty list, not an error.
		logging.Ctx(ctx).Debug().
			Str("user_id", req.UserID).
			Msg("no eligible candidates, returning empty recommendation list")
		return result, nil
	}

	start := time.Now()
	score := p.scorer.Score(view, ratings, cands, req.UserID)
	metrics.RecordStage("scoring", time.Since(start))
	result.ColdStart = score.ColdStart
	result.SkippedRatings = score.SkippedRatings

	cands = p.capCandidates(cands)

	start = time.Now()
	p.combiner.Combine(view, cands, theta)
	metrics.RecordStage("bias", time.Since(start))

	if k > len(cands) {
		k = len(cands)
	}
	top := cands[:k]

	likedGenres := likedGenres(view, ratings)

	start = time.Now()
	result.Recommendations = make([]models.Recommendation, 0, k)
	result.Candidates = make([]models.ScoredCandidate, 0, k)
	for _, c := range top {
		scored := models.ScoredCandidate{
			MovieID:    c.movie.ID,
			Title:      c.movie.Title,
			Genres:     c.movie.Genres,
			BaseScore:  c.baseScore,
			FinalScore: c.finalScore,
			Breakdown:  c.breakdown,
		}
		explanation := p.composer.Compose(ctx, &scored, theta, likedGenres)

		result.Candidates = append(result.Candidates, scored)
		result.Recommendations = append(result.Recommendations, models.Recommendation{
			MovieID:     c.movie.ID,
			Title:       c.movie.Title,
			Genres:      c.movie.Genres,
			FinalScore:  c.finalScore,
			Explanation: explanation.Text,
		})
	}
	metrics.RecordStage("explain", time.Since(start))

	return result, nil
}

// resolveTopK applies the default and enforces bounds.
func (p *Pipeline) resolveTopK(k int) (int, error) {
	if k == 0 {
		return p.cfg.DefaultTopK, nil
	}
	if k < 0 || k > p.cfg.MaxTopK {
		return 0, fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidTopK, k, p.cfg.MaxTopK)
	}
	return k, nil
}

// eligibleCandidates builds the candidate pool: every catalog movie the
// user has not rated, in deterministic catalog order.
func (p *Pipeline) eligibleCandidates(view CatalogView, rated map[string]struct{}) []*candidate {
	movies := view.Movies()
	cands := make([]*candidate, 0, len(movies))
	for _, movie := range movies {
		if _, ok := rated[movie.ID]; ok {
			continue
		}
		cands = append(cands, &candidate{movie: movie})
	}
	return cands
}

// capCandidates truncates oversized pools to the MaxCandidates highest by
// raw relevance, tie-broken by movie ID for determinism.
func (p *Pipeline) capCandidates(cands []*candidate) []*candidate {
	if len(cands) <= p.cfg.MaxCandidates {
		return cands
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].baseScore != cands[j].baseScore {
			return cands[i].baseScore > cands[j].baseScore
		}
		return cands[i].movie.ID < cands[j].movie.ID
	})
	return cands[:p.cfg.MaxCandidates]
}

// upsertRatings collapses duplicate movie IDs in a payload, the last entry
// winning, so a resubmitted rating replaces rather than double-weights.
func upsertRatings(ratings []models.Rating) []models.Rating {
	index := make(map[string]int, len(ratings))
	out := make([]models.Rating, 0, len(ratings))
	for i := range ratings {
		if at, ok := index[ratings[i].MovieID]; ok {
			out[at] = ratings[i]
			continue
		}
		index[ratings[i].MovieID] = len(out)
		out = append(out, ratings[i])
	}
	return out
}

// likedGenres collects, sorted for determinism, the genres of movies the
// user rated positively. The catalog is authoritative; payload-supplied
// genres are used only when the rated movie is missing from the catalog.
func likedGenres(view CatalogView, ratings []models.Rating) []string {
	seen := make(map[string]struct{})
	for i := range ratings {
		r := &ratings[i]
		if !r.IsPositive() {
			continue
		}
		genres := r.Genres
		if movie, ok := view.Movie(r.MovieID); ok {
			genres = movie.Genres
		}
		for _, genre := range genres {
			seen[genre] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for genre := range seen {
		out = append(out, genre)
	}
	sort.Strings(out)
	return out
}
