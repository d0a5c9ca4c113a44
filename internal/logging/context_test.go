// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("expected empty request ID for bare context, got %q", id)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if id := RequestIDFromContext(ctx); id != "req-123" {
		t.Errorf("expected 'req-123', got %q", id)
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	a := GenerateRequestID()
	b := GenerateRequestID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty request IDs")
	}
	if a == b {
		t.Errorf("expected unique request IDs, got %q twice", a)
	}
}

func TestCtxAttachesRequestID(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf))

	ctx := ContextWithRequestID(context.Background(), "req-456")
	Ctx(ctx).Info().Msg("with request id")

	output := buf.String()
	if !strings.Contains(output, "req-456") {
		t.Errorf("expected request ID in output: %s", output)
	}
}
