// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Security.AuthMode != "none" {
		t.Errorf("expected default auth_mode 'none', got %q", cfg.Security.AuthMode)
	}
	if cfg.Recommend.DefaultTopK != 6 {
		t.Errorf("expected default top_k 6, got %d", cfg.Recommend.DefaultTopK)
	}
	if cfg.Recommend.DefaultTheta != 0.5 {
		t.Errorf("expected default theta 0.5, got %g", cfg.Recommend.DefaultTheta)
	}
	if cfg.TextGen.Enabled {
		t.Error("expected textgen disabled by default")
	}
	if len(cfg.Security.AllowedOrigins) != 1 || cfg.Security.AllowedOrigins[0] != "*" {
		t.Errorf("expected default allowed_origins ['*'], got %v", cfg.Security.AllowedOrigins)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "invalid environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "invalid environment",
		},
		{
			name: "auth none in production",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.AuthMode = "none"
			},
			wantErr: "not allowed in production",
		},
		{
			name: "jwt without secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = "jwt"
				c.Security.JWTSecret = "short"
			},
			wantErr: "jwt_secret",
		},
		{
			name:    "invalid auth mode",
			mutate:  func(c *Config) { c.Security.AuthMode = "basic" },
			wantErr: "invalid auth_mode",
		},
		{
			name:    "empty origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed_origins",
		},
		{
			name: "store without path",
			mutate: func(c *Config) {
				c.Store.Path = ""
				c.Store.InMemory = false
			},
			wantErr: "path is required",
		},
		{
			name:    "zero top_k",
			mutate:  func(c *Config) { c.Recommend.DefaultTopK = 0 },
			wantErr: "default_top_k",
		},
		{
			name:    "max_top_k below default",
			mutate:  func(c *Config) { c.Recommend.MaxTopK = 3 },
			wantErr: "max_top_k",
		},
		{
			name:    "negative epsilon",
			mutate:  func(c *Config) { c.Recommend.Epsilon = 0 },
			wantErr: "epsilon",
		},
		{
			name:    "theta out of range",
			mutate:  func(c *Config) { c.Recommend.DefaultTheta = 1.5 },
			wantErr: "default_theta",
		},
		{
			name: "textgen enabled without base_url",
			mutate: func(c *Config) {
				c.TextGen.Enabled = true
				c.TextGen.BaseURL = ""
			},
			wantErr: "base_url",
		},
		{
			name: "textgen invalid scheme",
			mutate: func(c *Config) {
				c.TextGen.Enabled = true
				c.TextGen.BaseURL = "ftp://example.com"
			},
			wantErr: "scheme",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateJWTMode(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Server.Environment = "production"
	cfg.Security.AuthMode = "jwt"
	cfg.Security.JWTSecret = strings.Repeat("s", 32)

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid production jwt config, got: %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		environment string
		want        bool
	}{
		{"production", true},
		{"Production", true},
		{"PRODUCTION", true},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			t.Parallel()

			cfg := ServerConfig{Environment: tt.environment}
			if got := cfg.IsProduction(); got != tt.want {
				t.Errorf("IsProduction(%q) = %v, want %v", tt.environment, got, tt.want)
			}
		})
	}
}

func TestRateLimitDisabledSkipsValidation(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	cfg.Security.RateLimitWindow = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected rate limit fields ignored when disabled, got: %v", err)
	}
}

func TestTextGenDisabledSkipsValidation(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.TextGen.Enabled = false
	cfg.TextGen.Timeout = 0
	cfg.TextGen.MaxTokens = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected textgen fields ignored when disabled, got: %v", err)
	}
}

func TestValidateTimeouts(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Server.Timeout = -1 * time.Second

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected timeout validation error, got: %v", err)
	}
}
