// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package textgen implements an explanation generator backed by an
// OpenAI-compatible chat completions endpoint. The client is wrapped in a
// local rate limiter and a circuit breaker so that a slow or failing
// upstream degrades recommendations to template explanations instead of
// failing requests.
package textgen
