// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package models

import (
	"strings"
	"testing"
)

func TestRatingValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rating  Rating
		wantErr string
	}{
		{
			name:   "valid minimum",
			rating: Rating{MovieID: "m1", Value: 1},
		},
		{
			name:   "valid maximum",
			rating: Rating{MovieID: "m1", Value: 5},
		},
		{
			name:    "missing movie id",
			rating:  Rating{Value: 3},
			wantErr: "missing movieId",
		},
		{
			name:    "value too low",
			rating:  Rating{MovieID: "m1", Value: 0},
			wantErr: "out of range",
		},
		{
			name:    "value too high",
			rating:  Rating{MovieID: "m1", Value: 6},
			wantErr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.rating.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid rating, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestRatingPolarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    int
		positive bool
		negative bool
	}{
		{1, false, true},
		{2, false, true},
		{3, false, false}, // neutral
		{4, true, false},
		{5, true, false},
	}

	for _, tt := range tests {
		r := Rating{MovieID: "m1", Value: tt.value}
		if got := r.IsPositive(); got != tt.positive {
			t.Errorf("IsPositive() for value %d = %v, want %v", tt.value, got, tt.positive)
		}
		if got := r.IsNegative(); got != tt.negative {
			t.Errorf("IsNegative() for value %d = %v, want %v", tt.value, got, tt.negative)
		}
	}
}

func TestTierForTheta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		theta float64
		want  StyleTier
	}{
		{0.0, TierQuickInsight},
		{0.1, TierQuickInsight},
		{0.2, TierQuickInsight},
		{0.3, TierQuickInsight}, // boundary is inclusive
		{0.31, TierConciseReasoning},
		{0.5, TierConciseReasoning},
		{0.7, TierConciseReasoning}, // boundary is inclusive
		{0.71, TierFairnessAware},
		{0.9, TierFairnessAware},
		{1.0, TierFairnessAware},
	}

	for _, tt := range tests {
		if got := TierForTheta(tt.theta); got != tt.want {
			t.Errorf("TierForTheta(%g) = %q, want %q", tt.theta, got, tt.want)
		}
	}
}
