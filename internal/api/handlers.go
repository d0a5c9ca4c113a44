// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/fairlens/fairlens/internal/catalog"
	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/models"
	"github.com/fairlens/fairlens/internal/recommend"
	"github.com/fairlens/fairlens/internal/store"
	"github.com/fairlens/fairlens/internal/validation"
)

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	cfg      *config.Config
	store    *store.Store
	provider *catalog.Provider
	pipeline *recommend.Pipeline

	startTime time.Time
}

// NewHandler creates the API handler set.
func NewHandler(cfg *config.Config, st *store.Store, provider *catalog.Provider, pipeline *recommend.Pipeline) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		provider:  provider,
		pipeline:  pipeline,
		startTime: time.Now(),
	}
}

// RecommendResponse is the data payload of a successful recommend call.
type RecommendResponse struct {
	UserID          string                   `json:"user_id"`
	Theta           float64                  `json:"theta"`
	StyleTier       models.StyleTier         `json:"style_tier"`
	ColdStart       bool                     `json:"cold_start"`
	SkippedRatings  int                      `json:"skipped_ratings,omitempty"`
	Recommendations []models.Recommendation  `json:"recommendations"`
	Candidates      []models.ScoredCandidate `json:"candidates,omitempty"`
}

// Recommend handles POST /api/v1/recommend.
//
// The submitted ratings are both persisted (upsert per user/movie pair) and
// used as the profile for this ranking call, so a brand-new user gets
// recommendations from their very first request.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ratings := req.ModelRatings()
	h.persistRatings(r, ratings)

	theta := h.cfg.Recommend.DefaultTheta
	if req.ThetaU != nil {
		theta = *req.ThetaU
	}

	snapshot := h.provider.Current()
	result, err := h.pipeline.Recommend(r.Context(), snapshot, recommend.Request{
		UserID:  req.UserID,
		Ratings: ratings,
		Theta:   theta,
		TopK:    req.TopK,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidTopK) || errors.Is(err, recommend.ErrInvalidRating) {
			rw.BadRequest(err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", req.UserID).Msg("recommendation failed")
		rw.InternalError("recommendation failed")
		return
	}

	rw.Success(RecommendResponse{
		UserID:          req.UserID,
		Theta:           result.Theta,
		StyleTier:       result.Tier,
		ColdStart:       result.ColdStart,
		SkippedRatings:  result.SkippedRatings,
		Recommendations: result.Recommendations,
		Candidates:      result.Candidates,
	})
}

// persistRatings upserts the submitted ratings. Persistence failures are
// logged but do not fail the ranking request: the in-flight ratings are
// still used for scoring.
func (h *Handler) persistRatings(r *http.Request, ratings []models.Rating) {
	for i := range ratings {
		if err := h.store.UpsertRating(r.Context(), &ratings[i]); err != nil {
			logging.Ctx(r.Context()).Warn().
				Err(err).
				Str("movie_id", ratings[i].MovieID).
				Msg("failed to persist rating")
			continue
		}
		metrics.RatingsUpserted.Inc()
	}
}

// RecommendConfigResponse describes the active ranking parameters.
type RecommendConfigResponse struct {
	DefaultTopK         int     `json:"default_top_k"`
	MaxTopK             int     `json:"max_top_k"`
	DefaultTheta        float64 `json:"default_theta"`
	RelevanceDecay      float64 `json:"relevance_decay"`
	PopularityWeightMax float64 `json:"popularity_weight_max"`
	FairnessWeightMax   float64 `json:"fairness_weight_max"`

	QuickInsightMaxTheta     float64 `json:"quick_insight_max_theta"`
	ConciseReasoningMaxTheta float64 `json:"concise_reasoning_max_theta"`
}

// RecommendConfig handles GET /api/v1/recommend/config. It exposes the
// ranking parameters and tier boundaries so clients can render theta
// controls without hardcoding server defaults.
func (h *Handler) RecommendConfig(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, RecommendConfigResponse{
		DefaultTopK:              h.cfg.Recommend.DefaultTopK,
		MaxTopK:                  h.cfg.Recommend.MaxTopK,
		DefaultTheta:             h.cfg.Recommend.DefaultTheta,
		RelevanceDecay:           h.cfg.Recommend.RelevanceDecay,
		PopularityWeightMax:      h.cfg.Recommend.PopularityWeightMax,
		FairnessWeightMax:        h.cfg.Recommend.FairnessWeightMax,
		QuickInsightMaxTheta:     models.QuickInsightMaxTheta,
		ConciseReasoningMaxTheta: models.ConciseReasoningMaxTheta,
	})
}
