// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package models defines data structures used throughout the FairLens
// application: movies, ratings, scored candidates, and explanations.
package models

import (
	"fmt"
	"time"
)

// Movie represents a single catalog item.
//
// Movies are static reference data: the ranking pipeline reads them but never
// mutates them. Genres drive the fairness/diversity signal, so an empty genre
// list means the item neither receives nor dilutes a fairness boost.
type Movie struct {
	ID     string   `json:"movie_id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// Rating is one user's explicit rating of one movie, on a 1-5 integer scale.
//
// Ratings follow upsert semantics: the last write for a given (user, movie)
// pair wins. During a ranking request the user's rating set is treated as an
// immutable snapshot.
//
// Title and Genres are optional client-supplied fallbacks. The catalog is
// authoritative; these fields are consulted only when the catalog has no
// entry for the movie, so unvalidated client data never overrides known
// metadata.
type Rating struct {
	UserID  string `json:"user_id,omitempty"`
	MovieID string `json:"movieId"`
	Value   int    `json:"rating"`

	// Client-supplied fallback metadata, used only on catalog miss.
	Title  string   `json:"title,omitempty"`
	Genres []string `json:"genres,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// RatingMin and RatingMax bound the explicit rating scale.
const (
	RatingMin = 1
	RatingMax = 5
)

// PositiveRatingThreshold and NegativeRatingThreshold split ratings into
// liked / disliked signals for user profile synthesis. A rating of 3 is
// neutral and contributes to neither.
const (
	PositiveRatingThreshold = 4
	NegativeRatingThreshold = 2
)

// Validate checks that the rating has a movie ID and an in-range value.
func (r *Rating) Validate() error {
	if r.MovieID == "" {
		return fmt.Errorf("rating missing movieId")
	}
	if r.Value < RatingMin || r.Value > RatingMax {
		return fmt.Errorf("rating for %s out of range: %d (must be %d-%d)",
			r.MovieID, r.Value, RatingMin, RatingMax)
	}
	return nil
}

// IsPositive reports whether the rating expresses a clear like.
func (r *Rating) IsPositive() bool {
	return r.Value >= PositiveRatingThreshold
}

// IsNegative reports whether the rating expresses a clear dislike.
func (r *Rating) IsNegative() bool {
	return r.Value <= NegativeRatingThreshold
}
