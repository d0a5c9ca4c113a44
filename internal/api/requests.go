// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/fairlens/fairlens/internal/models"
)

// maxRequestBodyBytes caps the recommend request payload. A user rating
// every movie in a large catalog stays well under this.
const maxRequestBodyBytes = 4 << 20

// RatingInput is one rating entry in a recommend request.
//
// Title and genres are optional fallback metadata, honored only when the
// movie is absent from the catalog.
type RatingInput struct {
	MovieID string   `json:"movieId" validate:"required"`
	Rating  int      `json:"rating" validate:"required,min=1,max=5"`
	Title   string   `json:"title,omitempty"`
	Genres  []string `json:"genres,omitempty"`
}

// RecommendRequest is the POST /api/v1/recommend payload.
//
// Ratings may be empty: a new user with no history still gets a ranked list
// from the popularity prior. ThetaU is a pointer so a missing field can fall
// back to the configured default; out-of-range values are clamped by the
// pipeline rather than rejected. TopK of 0 means the configured default.
type RecommendRequest struct {
	UserID  string        `json:"user_id" validate:"required"`
	Ratings []RatingInput `json:"ratings" validate:"omitempty,dive"`
	ThetaU  *float64      `json:"theta_u,omitempty"`
	TopK    int           `json:"top_k,omitempty" validate:"omitempty,min=1"`
}

// ModelRatings converts the payload entries to domain ratings for the user.
func (req *RecommendRequest) ModelRatings() []models.Rating {
	ratings := make([]models.Rating, len(req.Ratings))
	for i, in := range req.Ratings {
		ratings[i] = models.Rating{
			UserID:  req.UserID,
			MovieID: in.MovieID,
			Value:   in.Rating,
			Title:   in.Title,
			Genres:  in.Genres,
		}
	}
	return ratings
}

// decodeJSONBody decodes a request body into dst with a size cap and strict
// field checking. Unknown fields are rejected so client typos surface as
// errors instead of silently ignored options.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("request body is empty")
		case errors.As(err, &maxBytesErr):
			return fmt.Errorf("request body exceeds %d bytes", maxBytesErr.Limit)
		default:
			return fmt.Errorf("invalid JSON: %v", err)
		}
	}

	// A second document after the first is malformed input.
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}

	return nil
}
