// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/middleware"
)

// healthRateLimit is the permissive per-IP limit for health endpoints,
// allowing frequent monitoring probes while preventing abuse.
const healthRateLimit = 1000

// Router wires handlers, middleware, and routes.
type Router struct {
	cfg     *config.Config
	handler *Handler
	authMW  func(http.Handler) http.Handler
}

// NewRouter creates the router. authMW is the authentication middleware
// produced by auth.Middleware; pass a passthrough when auth is disabled.
func NewRouter(cfg *config.Config, handler *Handler, authMW func(http.Handler) http.Handler) *Router {
	if authMW == nil {
		authMW = func(next http.Handler) http.Handler { return next }
	}
	return &Router{
		cfg:     cfg,
		handler: handler,
		authMW:  authMW,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Security.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Health endpoints: permissive rate limiting, no auth.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.rateLimit(healthRateLimit))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Core API endpoints: rate limited, instrumented, authenticated.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit(router.cfg.Security.RateLimitReqs))
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.authMW)

		r.Post("/recommend", router.handler.Recommend)
		r.Get("/recommend/config", router.handler.RecommendConfig)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// rateLimit builds a per-IP rate limiter for the configured window.
// Limited requests are counted per endpoint and answered with the standard
// error envelope.
func (router *Router) rateLimit(requests int) func(http.Handler) http.Handler {
	if router.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		requests,
		router.cfg.Security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			NewResponseWriter(w, r).TooManyRequests("rate limit exceeded, retry later")
		}),
	)
}
