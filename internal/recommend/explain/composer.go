// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package explain composes natural-language explanations for ranked
// recommendations.
//
// The composer selects a style tier from theta and renders either a
// deterministic template or, when a Generator is wired in, text from a
// generative backend. Generation is strictly best-effort: any error, empty
// response, or timeout falls back to the template so the pipeline never
// drops a recommendation for lack of prose.
package explain

import (
	"context"
	"errors"
	"strings"

	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/models"
)

// negligibleContribution is the weighted-contribution floor below which a
// signal is not mentioned in explanations. Keeps the composer honest: no
// claiming a fairness boost that rounds to zero.
const negligibleContribution = 0.01

// Prompt carries everything a generative backend needs to write one
// explanation.
type Prompt struct {
	Title       string
	Genres      []string
	Tier        models.StyleTier
	Breakdown   models.ScoreBreakdown
	LikedGenres []string
	Theta       float64
}

// Generator produces explanation text from a prompt. Implementations are
// external collaborators that may fail or time out; the composer treats any
// error as a signal to fall back.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// ErrUnavailable is returned by generators whose circuit breaker is open.
// ErrRateLimited is returned when the generator's local rate limiter has no
// tokens. Distinguished only for metrics; the fallback path is the same.
var (
	ErrUnavailable = errors.New("explain: generator unavailable")
	ErrRateLimited = errors.New("explain: generator rate limited")
)

// Composer turns score breakdowns into explanation strings.
type Composer struct {
	gen Generator
}

// NewComposer creates a composer. A nil generator means template-only
// composition, which is fully deterministic.
func NewComposer(gen Generator) *Composer {
	return &Composer{gen: gen}
}

// Compose produces the explanation for one scored candidate. Never fails:
// the deterministic template is the floor of service.
func (c *Composer) Compose(ctx context.Context, cand *models.ScoredCandidate, theta float64, likedGenres []string) models.Explanation {
	tier := models.TierForTheta(theta)

	explanation := models.Explanation{
		MovieID: cand.MovieID,
		Tier:    tier,
	}

	if c.gen != nil {
		text, err := c.gen.Generate(ctx, Prompt{
			Title:       cand.Title,
			Genres:      cand.Genres,
			Tier:        tier,
			Breakdown:   cand.Breakdown,
			LikedGenres: likedGenres,
			Theta:       theta,
		})
		if err == nil && strings.TrimSpace(text) != "" {
			explanation.Text = strings.TrimSpace(text)
			explanation.Generated = true
			metrics.RecordExplanation(string(tier), true)
			return explanation
		}
		if err != nil {
			metrics.ExplanationFallbacks.WithLabelValues(fallbackReason(err)).Inc()
			logging.Ctx(ctx).Warn().
				Err(err).
				Str("movie_id", cand.MovieID).
				Str("tier", string(tier)).
				Msg("explanation generation failed, using template")
		}
	}

	explanation.Text = renderTemplate(tier, cand, likedGenres)
	metrics.RecordExplanation(string(tier), false)
	return explanation
}

// fallbackReason maps a generator error to a metrics label.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrUnavailable):
		return "breaker_open"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
