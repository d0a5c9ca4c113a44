// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package middleware provides HTTP middleware shared by all API routes:
// request ID propagation and Prometheus request instrumentation.
package middleware
