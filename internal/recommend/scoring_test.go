// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package recommend

import (
	"math"
	"testing"
)

func TestRatingWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value int
		want  float64
	}{
		{1, -1.0},
		{2, -0.5},
		{3, 0},
		{4, 0.5},
		{5, 1.0},
	}

	for _, tt := range tests {
		if got := ratingWeight(tt.value); got != tt.want {
			t.Errorf("ratingWeight(%d) = %g, want %g", tt.value, got, tt.want)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"scaled", []float64{2, 0}, []float64{5, 0}, 1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
		{"dimension mismatch", []float64{1, 0}, []float64{1, 0, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cosineSimilarity = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestClampTheta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2.5, 1},
	}

	for _, tt := range tests {
		if got := ClampTheta(tt.in); got != tt.want {
			t.Errorf("ClampTheta(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestWeightsMonotonicAndDegenerate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	wRel, wPop, wFair := cfg.Weights(0)
	if wRel != 1 || wPop != 0 || wFair != 0 {
		t.Errorf("theta=0 must reduce to pure relevance: (%g, %g, %g)", wRel, wPop, wFair)
	}

	prevRel, prevPop, prevFair := wRel, wPop, wFair
	for theta := 0.1; theta <= 1.0001; theta += 0.1 {
		wRel, wPop, wFair = cfg.Weights(theta)
		if wRel > prevRel {
			t.Errorf("w_rel not monotonically decreasing at theta=%g", theta)
		}
		if wPop < prevPop || wFair < prevFair {
			t.Errorf("w_pop/w_fair not monotonically increasing at theta=%g", theta)
		}
		prevRel, prevPop, prevFair = wRel, wPop, wFair
	}

	wRel, wPop, wFair = cfg.Weights(1)
	if wPop != cfg.PopularityWeightMax || wFair != cfg.FairnessWeightMax {
		t.Errorf("theta=1 must reach configured maxima: (%g, %g, %g)", wRel, wPop, wFair)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	defCfg := DefaultConfig()
	if err := defCfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top_k", func(c *Config) { c.DefaultTopK = 0 }},
		{"max below default", func(c *Config) { c.MaxTopK = 1 }},
		{"candidates below max", func(c *Config) { c.MaxCandidates = 10 }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"decay above 1", func(c *Config) { c.RelevanceDecay = 1.5 }},
		{"negative theta", func(c *Config) { c.DefaultTheta = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
