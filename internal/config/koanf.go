// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fairlens/config.yaml",
	"/etc/fairlens/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			AuthMode:          "none",
			JWTSecret:         "",
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			AllowedOrigins:    []string{"*"},
		},
		Store: StoreConfig{
			Path:         "/data/fairlens",
			InMemory:     false,
			ArtifactPath: "",
		},
		Catalog: CatalogConfig{
			RefreshInterval: 5 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultTopK:         6,
			MaxTopK:             50,
			MaxCandidates:       1000,
			Epsilon:             1e-9,
			RelevanceDecay:      0.5,
			PopularityWeightMax: 0.3,
			FairnessWeightMax:   0.2,
			DefaultTheta:        0.5,
			ColdStartMinRatings: 1,
		},
		TextGen: TextGenConfig{
			Enabled:            false, // Template fallback only by default
			BaseURL:            "",
			APIKey:             "",
			Model:              "gpt-4o-mini",
			Timeout:            10 * time.Second,
			MaxTokens:          256,
			RateLimit:          5,
			Burst:              10,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. The returned Config has already
// passed Validate.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as
// comma-separated slices when supplied through environment variables.
var sliceConfigPaths = []string{
	"security.allowed_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - ALLOWED_ORIGINS -> security.allowed_origins
//   - RECOMMEND_DEFAULT_THETA -> recommend.default_theta
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Security mappings
		"auth_mode":           "security.auth_mode",
		"jwt_secret":          "security.jwt_secret",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"allowed_origins":     "security.allowed_origins",

		// Store mappings
		"store_path":          "store.path",
		"store_in_memory":     "store.in_memory",
		"store_artifact_path": "store.artifact_path",

		// Catalog mappings
		"catalog_refresh_interval": "catalog.refresh_interval",

		// Recommendation mappings
		"recommend_default_top_k":          "recommend.default_top_k",
		"recommend_max_top_k":              "recommend.max_top_k",
		"recommend_max_candidates":         "recommend.max_candidates",
		"recommend_epsilon":                "recommend.epsilon",
		"recommend_relevance_decay":        "recommend.relevance_decay",
		"recommend_popularity_weight_max":  "recommend.popularity_weight_max",
		"recommend_fairness_weight_max":    "recommend.fairness_weight_max",
		"recommend_default_theta":          "recommend.default_theta",
		"recommend_cold_start_min_ratings": "recommend.cold_start_min_ratings",

		// Text generation mappings
		"textgen_enabled":              "textgen.enabled",
		"textgen_base_url":             "textgen.base_url",
		"textgen_api_key":              "textgen.api_key",
		"textgen_model":                "textgen.model",
		"textgen_timeout":              "textgen.timeout",
		"textgen_max_tokens":           "textgen.max_tokens",
		"textgen_rate_limit":           "textgen.rate_limit",
		"textgen_burst":                "textgen.burst",
		"textgen_breaker_max_failures": "textgen.breaker_max_failures",
		"textgen_breaker_timeout":      "textgen.breaker_timeout",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables do not
	// pollute the config.
	return ""
}
