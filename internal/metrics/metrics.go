// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation pipeline stages (scoring, bias blending, explanation)
// - Catalog snapshot refreshes
// - Generative-text backend health (circuit breaker, fallbacks)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Pipeline Metrics
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of ranking requests processed",
		},
	)

	RecommendStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_stage_duration_seconds",
			Help:    "Duration of recommendation pipeline stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"}, // "scoring", "bias", "explain"
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of eligible candidates per ranking request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	RecommendColdStarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cold_starts_total",
			Help: "Total number of ranking requests served by the popularity prior",
		},
	)

	RecommendSkippedRatings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_skipped_ratings_total",
			Help: "Total number of ratings skipped because the movie is missing from the latent store",
		},
	)

	// Explanation Metrics
	ExplanationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explanations_generated_total",
			Help: "Total number of explanations produced",
		},
		[]string{"tier", "source"}, // source: "generated", "template"
	)

	ExplanationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explanation_fallbacks_total",
			Help: "Total number of template fallbacks after generative backend failures",
		},
		[]string{"reason"}, // "timeout", "error", "breaker_open", "rate_limited"
	)

	// Catalog Metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the active catalog snapshot",
		},
	)

	CatalogRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog snapshot refreshes",
		},
	)

	CatalogRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_refresh_errors_total",
			Help: "Total number of failed catalog snapshot refreshes",
		},
	)

	// Circuit Breaker Metrics (generative-text backend)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// Rating Store Metrics
	RatingsUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_upserted_total",
			Help: "Total number of ratings written to the store",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStage records the duration of one recommendation pipeline stage
func RecordStage(stage string, duration time.Duration) {
	RecommendStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordExplanation records a produced explanation by tier and source
func RecordExplanation(tier string, generated bool) {
	source := "template"
	if generated {
		source = "generated"
	}
	ExplanationsGenerated.WithLabelValues(tier, source).Inc()
}
