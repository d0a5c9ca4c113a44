// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package api implements the FairLens HTTP API.
//
// Endpoints:
//   - POST /api/v1/recommend        rank and explain recommendations
//   - GET  /api/v1/recommend/config active ranking parameters
//   - GET  /api/v1/health           service health summary
//   - GET  /api/v1/health/live      liveness probe
//   - GET  /api/v1/health/ready     readiness probe
//   - GET  /metrics                 Prometheus metrics
//
// All JSON endpoints use the APIResponse envelope with success, data, error,
// and meta fields.
package api
