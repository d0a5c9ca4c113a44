// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package main is the entry point for the FairLens recommendation server.
//
// FairLens serves fairness-aware movie recommendations: it blends
// personalized relevance with a popularity penalty and a genre fairness
// boost, controlled per request by the personalization parameter theta,
// and attaches a natural-language explanation to every recommendation.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Store: Open the Badger-backed model artifact store
//  3. Catalog: Build the in-memory catalog snapshot from the store
//  4. Text generation (optional): OpenAI-compatible explanation backend
//  5. Pipeline: Scoring, ranking, and explanation composition
//  6. Authentication: JWT bearer tokens or no-auth mode
//  7. HTTP Server: REST API under /api/v1 plus Prometheus /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see config package docs)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Model Artifacts
//
// FairLens serves a trained model, it does not train one. Item vectors,
// popularity counts, and catalog metadata are imported from a JSON artifact
// on first start:
//
//	export STORE_ARTIFACT_PATH=/data/artifact.json
//	./fairlens
//
// Subsequent starts reuse the persisted store; the artifact is only
// imported while the store is empty.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the store
//
// # Example Usage
//
// Development, no authentication:
//
//	export AUTH_MODE=none
//	export STORE_IN_MEMORY=true
//	export STORE_ARTIFACT_PATH=./artifact.json
//	./fairlens
//
// Production with JWT and a generative explanation backend:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export STORE_PATH=/data/fairlens
//	export TEXTGEN_ENABLED=true
//	export TEXTGEN_BASE_URL=https://api.openai.com/v1
//	export TEXTGEN_API_KEY=your-api-key
//	./fairlens
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/fairlens/fairlens/internal/api"
	"github.com/fairlens/fairlens/internal/auth"
	"github.com/fairlens/fairlens/internal/catalog"
	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/recommend"
	"github.com/fairlens/fairlens/internal/recommend/explain"
	"github.com/fairlens/fairlens/internal/store"
	"github.com/fairlens/fairlens/internal/supervisor"
	"github.com/fairlens/fairlens/internal/supervisor/services"
	"github.com/fairlens/fairlens/internal/textgen"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting FairLens with supervisor tree")
	logging.Info().
		Str("store_path", cfg.Store.Path).
		Bool("in_memory", cfg.Store.InMemory).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("textgen_enabled", cfg.TextGen.Enabled).
		Msg("Configuration loaded")

	st, err := store.Open(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open model store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing model store")
		}
	}()
	logging.Info().Msg("Model store opened successfully")

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Import the model artifact on first start only; a populated store is
	// authoritative so that submitted ratings survive restarts.
	if cfg.Store.ArtifactPath != "" {
		empty, err := st.IsEmpty(ctx)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to inspect model store")
		}
		if empty {
			logging.Info().Str("path", cfg.Store.ArtifactPath).Msg("Store is empty, importing model artifact")
			if err := st.ImportArtifactFile(ctx, cfg.Store.ArtifactPath); err != nil {
				logging.Fatal().Err(err).Str("path", cfg.Store.ArtifactPath).Msg("Failed to import model artifact")
			}
		}
	}

	provider, err := catalog.NewProvider(ctx, st)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build catalog snapshot")
	}
	logging.Info().Int("movies", provider.Current().Len()).Msg("Catalog snapshot built")

	// Generative explanations are optional; with no generator the composer
	// renders deterministic templates.
	var generator explain.Generator
	if cfg.TextGen.Enabled {
		generator = textgen.NewClient(cfg.TextGen)
		logging.Info().
			Str("base_url", cfg.TextGen.BaseURL).
			Str("model", cfg.TextGen.Model).
			Msg("Generative explanation backend enabled")
	} else {
		logging.Info().Msg("Generative explanations disabled, using template explanations")
	}

	pipeline, err := recommend.NewPipeline(recommend.Config{
		DefaultTopK:         cfg.Recommend.DefaultTopK,
		MaxTopK:             cfg.Recommend.MaxTopK,
		MaxCandidates:       cfg.Recommend.MaxCandidates,
		Epsilon:             cfg.Recommend.Epsilon,
		RelevanceDecay:      cfg.Recommend.RelevanceDecay,
		PopularityWeightMax: cfg.Recommend.PopularityWeightMax,
		FairnessWeightMax:   cfg.Recommend.FairnessWeightMax,
		DefaultTheta:        cfg.Recommend.DefaultTheta,
		ColdStartMinRatings: cfg.Recommend.ColdStartMinRatings,
	}, explain.NewComposer(generator))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation pipeline")
	}

	if cfg.Security.AuthMode == auth.ModeJWT {
		logging.Info().Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("Authentication is disabled (AUTH_MODE=none); do not expose this server on public networks")
	}
	authMW, err := auth.Middleware(cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	handler := api.NewHandler(cfg, st, provider, pipeline)
	router := api.NewRouter(cfg, handler, authMW)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogRefreshService(provider, cfg.Catalog.RefreshInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(srv, supervisor.DefaultTreeConfig().ShutdownTimeout))

	logging.Info().
		Str("addr", srv.Addr).
		Str("environment", cfg.Server.Environment).
		Msg("Starting HTTP server")

	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel (closed when the supervisor finishes)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("FairLens stopped gracefully")
}
