// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package config provides centralized configuration management for FairLens.
//
// Configuration is loaded with Koanf v2 from three layered sources with
// clear precedence: environment variables override an optional YAML config
// file, which overrides built-in defaults.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("failed to load config")
//	}
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// All sections carry defaults suitable for local development. Production
// deployments must set ENVIRONMENT=production, which enables stricter
// validation (for example, AUTH_MODE=none is rejected).
package config
