// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package api

import (
	"net/http"
	"time"
)

// HealthResponse reports overall service health.
type HealthResponse struct {
	Status       string    `json:"status"`
	Uptime       string    `json:"uptime"`
	CatalogSize  int       `json:"catalog_size"`
	CatalogBuilt time.Time `json:"catalog_built_at"`
	AuthMode     string    `json:"auth_mode"`
	TextGen      bool      `json:"textgen_enabled"`
	Version      string    `json:"version,omitempty"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snapshot := h.provider.Current()

	resp := HealthResponse{
		Status:   "ok",
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
		AuthMode: h.cfg.Security.AuthMode,
		TextGen:  h.cfg.TextGen.Enabled,
	}
	if snapshot != nil {
		resp.CatalogSize = snapshot.Len()
		resp.CatalogBuilt = snapshot.BuiltAt()
	}

	WriteSuccess(w, r, resp)
}

// HealthLive handles GET /api/v1/health/live. Liveness only requires the
// process to be serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. The service is ready once a
// catalog snapshot has been built. An empty catalog is still ready: ranking
// requests against it legitimately return empty recommendation lists.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.provider.Current() == nil {
		NewResponseWriter(w, r).ServiceUnavailable("catalog snapshot not yet built")
		return
	}
	WriteSuccess(w, r, map[string]string{"status": "ready"})
}
