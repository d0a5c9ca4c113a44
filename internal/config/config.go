// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Serving:
//     - Server: HTTP server settings (port, host, timeouts, environment)
//     - Security: Authentication mode, rate limiting, CORS
//
//  2. Recommendation:
//     - Store: Badger-backed model artifact store (latent vectors, popularity,
//       catalog metadata)
//     - Catalog: Snapshot refresh cadence
//     - Recommend: Ranking parameters (personalization curve, tie-breaking,
//       candidate and top-k limits)
//     - TextGen: Optional generative explanation backend (OpenAI-compatible)
//
//  3. Observability:
//     - Logging: Log levels and output formats
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Store     StoreConfig     `koanf:"store"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	TextGen   TextGenConfig   `koanf:"textgen"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Request timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production" (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Enables stricter validation in production
}

// SecurityConfig holds authentication and rate limiting settings.
//
// AuthMode selects the bearer-token mode for the recommendation API:
//   - "none": No authentication (development / trusted network deployments)
//   - "jwt": HS256 bearer tokens validated against JWTSecret
//
// Environment Variables:
//   - AUTH_MODE: Authentication mode (default: none)
//   - JWT_SECRET: HS256 signing secret (required when AUTH_MODE=jwt)
//   - RATE_LIMIT_REQUESTS: Requests per window per client (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
//   - ALLOWED_ORIGINS: Comma-separated CORS origins (default: *)
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	AllowedOrigins    []string      `koanf:"allowed_origins"`
}

// StoreConfig holds the Badger-backed model artifact store settings.
// The store persists trained model artifacts: per-user and per-item latent
// vectors, item popularity counts, and catalog metadata.
//
// Environment Variables:
//   - STORE_PATH: Badger database directory (default: /data/fairlens)
//   - STORE_IN_MEMORY: Run Badger without disk persistence (default: false)
//   - STORE_ARTIFACT_PATH: JSON model artifact imported at startup if the
//     store is empty (optional)
type StoreConfig struct {
	Path         string `koanf:"path"`
	InMemory     bool   `koanf:"in_memory"`
	ArtifactPath string `koanf:"artifact_path"`
}

// CatalogConfig controls the in-memory catalog snapshot.
// The snapshot is rebuilt from the store on an interval so that imported
// artifacts and newly submitted ratings become visible without a restart.
type CatalogConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval"` // 0 disables periodic refresh
}

// RecommendConfig holds the ranking parameters for the recommendation
// pipeline. The personalization parameter theta shifts weight from raw
// relevance toward popularity penalty and fairness boost; the curve fields
// below control how fast that shift happens.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_TOP_K: Top-k when the request omits it (default: 6)
//   - RECOMMEND_MAX_TOP_K: Upper bound on requested top-k (default: 50)
//   - RECOMMEND_MAX_CANDIDATES: Candidate pool cap per request (default: 1000)
//   - RECOMMEND_EPSILON: Tie-breaking threshold for final scores (default: 1e-9)
//   - RECOMMEND_RELEVANCE_DECAY: Relevance weight lost at theta=1 (default: 0.5)
//   - RECOMMEND_POPULARITY_WEIGHT_MAX: Popularity penalty weight at theta=1 (default: 0.3)
//   - RECOMMEND_FAIRNESS_WEIGHT_MAX: Fairness boost weight at theta=1 (default: 0.2)
//   - RECOMMEND_DEFAULT_THETA: Theta when the request omits it (default: 0.5)
//   - RECOMMEND_COLD_START_MIN_RATINGS: Ratings below which the popularity
//     prior replaces personalized relevance (default: 1)
type RecommendConfig struct {
	DefaultTopK         int     `koanf:"default_top_k"`
	MaxTopK             int     `koanf:"max_top_k"`
	MaxCandidates       int     `koanf:"max_candidates"`
	Epsilon             float64 `koanf:"epsilon"`
	RelevanceDecay      float64 `koanf:"relevance_decay"`
	PopularityWeightMax float64 `koanf:"popularity_weight_max"`
	FairnessWeightMax   float64 `koanf:"fairness_weight_max"`
	DefaultTheta        float64 `koanf:"default_theta"`
	ColdStartMinRatings int     `koanf:"cold_start_min_ratings"`
}

// TextGenConfig holds settings for the optional generative explanation
// backend. When disabled (or when the backend fails), explanations fall back
// to deterministic templates.
//
// Environment Variables:
//   - TEXTGEN_ENABLED: Enable the generative backend (default: false)
//   - TEXTGEN_BASE_URL: OpenAI-compatible API base URL
//   - TEXTGEN_API_KEY: Bearer token for the backend
//   - TEXTGEN_MODEL: Model identifier (default: gpt-4o-mini)
//   - TEXTGEN_TIMEOUT: Per-request timeout (default: 10s)
//   - TEXTGEN_MAX_TOKENS: Completion token cap (default: 256)
//   - TEXTGEN_RATE_LIMIT: Requests per second to the backend (default: 5)
//   - TEXTGEN_BURST: Rate limiter burst size (default: 10)
type TextGenConfig struct {
	Enabled   bool          `koanf:"enabled"`
	BaseURL   string        `koanf:"base_url"`
	APIKey    string        `koanf:"api_key"`
	Model     string        `koanf:"model"`
	Timeout   time.Duration `koanf:"timeout"`
	MaxTokens int           `koanf:"max_tokens"`
	RateLimit float64       `koanf:"rate_limit"`
	Burst     int           `koanf:"burst"`

	// Circuit breaker settings. After BreakerMaxFailures consecutive
	// failures the breaker opens for BreakerTimeout, during which all
	// explanations use the template fallback.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate checks the configuration for invalid or inconsistent values.
// It returns the first error encountered.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Security.validate(c.Server.IsProduction()); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Recommend.validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.TextGen.validate(); err != nil {
		return fmt.Errorf("textgen: %w", err)
	}
	if err := c.Logging.validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be 1-65535", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v: must be positive", c.Timeout)
	}
	switch strings.ToLower(c.Environment) {
	case "development", "production", "":
	default:
		return fmt.Errorf("invalid environment %q: must be development or production", c.Environment)
	}
	return nil
}

func (c *SecurityConfig) validate(production bool) error {
	switch c.AuthMode {
	case "none":
		if production {
			return fmt.Errorf("auth_mode 'none' is not allowed in production")
		}
	case "jwt":
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters when auth_mode=jwt")
		}
	default:
		return fmt.Errorf("invalid auth_mode %q: must be none or jwt", c.AuthMode)
	}
	if !c.RateLimitDisabled {
		if c.RateLimitReqs <= 0 {
			return fmt.Errorf("rate_limit_reqs must be positive, got %d", c.RateLimitReqs)
		}
		if c.RateLimitWindow <= 0 {
			return fmt.Errorf("rate_limit_window must be positive, got %v", c.RateLimitWindow)
		}
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed_origins must not be empty (use '*' to allow all)")
	}
	return nil
}

func (c *StoreConfig) validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("path is required unless in_memory is set")
	}
	return nil
}

func (c *RecommendConfig) validate() error {
	if c.DefaultTopK < 1 {
		return fmt.Errorf("default_top_k must be at least 1, got %d", c.DefaultTopK)
	}
	if c.MaxTopK < c.DefaultTopK {
		return fmt.Errorf("max_top_k (%d) must be >= default_top_k (%d)", c.MaxTopK, c.DefaultTopK)
	}
	if c.MaxCandidates < c.MaxTopK {
		return fmt.Errorf("max_candidates (%d) must be >= max_top_k (%d)", c.MaxCandidates, c.MaxTopK)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.RelevanceDecay < 0 || c.RelevanceDecay > 1 {
		return fmt.Errorf("relevance_decay must be in [0,1], got %g", c.RelevanceDecay)
	}
	if c.PopularityWeightMax < 0 || c.PopularityWeightMax > 1 {
		return fmt.Errorf("popularity_weight_max must be in [0,1], got %g", c.PopularityWeightMax)
	}
	if c.FairnessWeightMax < 0 || c.FairnessWeightMax > 1 {
		return fmt.Errorf("fairness_weight_max must be in [0,1], got %g", c.FairnessWeightMax)
	}
	if c.DefaultTheta < 0 || c.DefaultTheta > 1 {
		return fmt.Errorf("default_theta must be in [0,1], got %g", c.DefaultTheta)
	}
	if c.ColdStartMinRatings < 0 {
		return fmt.Errorf("cold_start_min_ratings must be non-negative, got %d", c.ColdStartMinRatings)
	}
	return nil
}

func (c *TextGenConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required when textgen is enabled")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required when textgen is enabled")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %g", c.RateLimit)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Burst)
	}
	return nil
}

func (c *LoggingConfig) validate() error {
	switch strings.ToLower(c.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "":
	default:
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("invalid log format %q: must be json or console", c.Format)
	}
	return nil
}
