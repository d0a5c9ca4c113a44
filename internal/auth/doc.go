// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package auth provides optional bearer-token authentication for the API.
//
// Two modes are supported, selected by AUTH_MODE:
//   - none: all requests pass through (development only, rejected in
//     production environments by config validation)
//   - jwt: requests must carry a valid HS256-signed bearer token in the
//     Authorization header
package auth
