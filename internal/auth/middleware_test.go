// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fairlens/fairlens/internal/config"
)

func TestMiddleware_NoneModePassesThrough(t *testing.T) {
	mw, err := Middleware(config.SecurityConfig{AuthMode: ModeNone})
	if err != nil {
		t.Fatalf("Middleware failed: %v", err)
	}

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if subject := SubjectFromContext(r.Context()); subject != "" {
			t.Errorf("Expected empty subject in none mode, got %s", subject)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("Expected handler to be invoked without credentials")
	}
}

func TestMiddleware_JWTModeRejectsMissingToken(t *testing.T) {
	mw, err := Middleware(config.SecurityConfig{AuthMode: ModeJWT, JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("Middleware failed: %v", err)
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be reached without a token")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
		t.Errorf("Expected UNAUTHORIZED error code in body, got: %s", rec.Body.String())
	}
}

func TestMiddleware_JWTModeAcceptsValidToken(t *testing.T) {
	cfg := config.SecurityConfig{AuthMode: ModeJWT, JWTSecret: testSecret}
	mw, err := Middleware(cfg)
	if err != nil {
		t.Fatalf("Middleware failed: %v", err)
	}

	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	token, err := manager.GenerateToken("user-7", "member")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var gotSubject string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = SubjectFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if gotSubject != "user-7" {
		t.Errorf("Expected subject user-7 in context, got %q", gotSubject)
	}
}

func TestMiddleware_JWTModeRejectsGarbageToken(t *testing.T) {
	mw, err := Middleware(config.SecurityConfig{AuthMode: ModeJWT, JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("Middleware failed: %v", err)
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be reached with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"valid", "Bearer abc123", "abc123"},
		{"case insensitive scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(req); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
