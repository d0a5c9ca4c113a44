// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fairlens/fairlens/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(config.SecurityConfig{AuthMode: ModeJWT, JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	return m
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	if _, err := NewJWTManager(config.SecurityConfig{AuthMode: ModeJWT}); err == nil {
		t.Error("Expected error for empty secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken("user-42", "member")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.Subject != "user-42" {
		t.Errorf("Expected subject user-42, got %s", claims.Subject)
	}
	if claims.Role != "member" {
		t.Errorf("Expected role member, got %s", claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := newTestManager(t)

	other, err := NewJWTManager(config.SecurityConfig{
		AuthMode:  ModeJWT,
		JWTSecret: "ffffffffffffffffffffffffffffffff",
	})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	token, err := other.GenerateToken("user-1", "")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("Expected validation failure for token signed with different secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	m := newTestManager(t)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = m.ValidateToken(signed)
	if err == nil {
		t.Fatal("Expected validation failure for expired token")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("Expected expiry error, got: %v", err)
	}
}

func TestValidateToken_RejectsUnexpectedAlgorithm(t *testing.T) {
	m := newTestManager(t)

	// alg=none tokens must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := m.ValidateToken(signed); err == nil {
		t.Error("Expected validation failure for alg=none token")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.ValidateToken("not.a.jwt"); err == nil {
		t.Error("Expected validation failure for malformed token")
	}
}
