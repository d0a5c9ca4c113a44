// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/logging"
)

// ModeNone disables authentication; ModeJWT requires bearer tokens.
const (
	ModeNone = "none"
	ModeJWT  = "jwt"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Middleware returns the authentication middleware for the configured mode.
// In ModeNone it is a passthrough. In ModeJWT it validates the Authorization
// bearer token and stores the claims in the request context.
func Middleware(cfg config.SecurityConfig) (func(http.Handler) http.Handler, error) {
	if cfg.AuthMode == ModeNone || cfg.AuthMode == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	manager, err := NewJWTManager(cfg)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("token validation failed")
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// ClaimsFromContext returns the validated claims for the request, or nil
// when authentication is disabled.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// SubjectFromContext returns the authenticated user ID, or "" in ModeNone.
func SubjectFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" for missing or malformed headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// unauthorized writes a 401 response in the API error envelope format.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
