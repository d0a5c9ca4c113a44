// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package recommend

import "fmt"

// Config contains the ranking parameters of the recommendation engine.
type Config struct {
	// DefaultTopK is used when a request does not specify top_k.
	DefaultTopK int

	// MaxTopK caps the requested top_k; larger requests are rejected.
	MaxTopK int

	// MaxCandidates caps the candidate pool per request. When more movies
	// are eligible, only the MaxCandidates highest by raw relevance enter
	// the bias stage.
	MaxCandidates int

	// Epsilon is the final-score difference below which two candidates are
	// considered tied and deterministic tie-breaking applies.
	Epsilon float64

	// RelevanceDecay is the fraction of relevance weight given up at
	// theta=1: w_rel(theta) = 1 - RelevanceDecay*theta.
	RelevanceDecay float64

	// PopularityWeightMax is the popularity penalty weight at theta=1:
	// w_pop(theta) = PopularityWeightMax*theta.
	PopularityWeightMax float64

	// FairnessWeightMax is the fairness boost weight at theta=1:
	// w_fair(theta) = FairnessWeightMax*theta.
	FairnessWeightMax float64

	// DefaultTheta is used when a request does not specify theta.
	DefaultTheta float64

	// ColdStartMinRatings is the number of usable ratings below which the
	// engine ranks by the popularity prior instead of profile similarity.
	ColdStartMinRatings int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTopK:         6,
		MaxTopK:             50,
		MaxCandidates:       1000,
		Epsilon:             1e-9,
		RelevanceDecay:      0.5,
		PopularityWeightMax: 0.3,
		FairnessWeightMax:   0.2,
		DefaultTheta:        0.5,
		ColdStartMinRatings: 1,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultTopK < 1 {
		return fmt.Errorf("default top_k must be at least 1, got %d", c.DefaultTopK)
	}
	if c.MaxTopK < c.DefaultTopK {
		return fmt.Errorf("max top_k (%d) must be >= default top_k (%d)", c.MaxTopK, c.DefaultTopK)
	}
	if c.MaxCandidates < c.MaxTopK {
		return fmt.Errorf("max candidates (%d) must be >= max top_k (%d)", c.MaxCandidates, c.MaxTopK)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.RelevanceDecay < 0 || c.RelevanceDecay > 1 {
		return fmt.Errorf("relevance decay must be in [0,1], got %g", c.RelevanceDecay)
	}
	if c.PopularityWeightMax < 0 || c.PopularityWeightMax > 1 {
		return fmt.Errorf("popularity weight max must be in [0,1], got %g", c.PopularityWeightMax)
	}
	if c.FairnessWeightMax < 0 || c.FairnessWeightMax > 1 {
		return fmt.Errorf("fairness weight max must be in [0,1], got %g", c.FairnessWeightMax)
	}
	if c.DefaultTheta < 0 || c.DefaultTheta > 1 {
		return fmt.Errorf("default theta must be in [0,1], got %g", c.DefaultTheta)
	}
	if c.ColdStartMinRatings < 0 {
		return fmt.Errorf("cold start min ratings must be non-negative, got %d", c.ColdStartMinRatings)
	}
	return nil
}

// Weights returns the blend weights (w_rel, w_pop, w_fair) for a theta value.
// All three curves are linear and monotonic in theta: at theta=0 the blend
// reduces to pure relevance, at theta=1 the popularity penalty and fairness
// boost reach their configured maxima.
func (c *Config) Weights(theta float64) (wRel, wPop, wFair float64) {
	theta = ClampTheta(theta)
	wRel = 1 - c.RelevanceDecay*theta
	wPop = c.PopularityWeightMax * theta
	wFair = c.FairnessWeightMax * theta
	return wRel, wPop, wFair
}

// ClampTheta clamps theta to [0,1]. Out-of-range input is clamped, not
// rejected.
func ClampTheta(theta float64) float64 {
	if theta < 0 {
		return 0
	}
	if theta > 1 {
		return 1
	}
	return theta
}
