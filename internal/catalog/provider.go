// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/store"
)

// Provider hands out the current catalog snapshot and rebuilds it from the
// store on demand. Reads never block writes: Refresh builds the new snapshot
// off to the side and swaps the pointer atomically.
type Provider struct {
	store    *store.Store
	snapshot atomic.Pointer[Snapshot]
}

// NewProvider creates a provider and builds the initial snapshot.
func NewProvider(ctx context.Context, s *store.Store) (*Provider, error) {
	p := &Provider{store: s}
	if err := p.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	return p, nil
}

// Current returns the active snapshot. Never nil after NewProvider succeeds.
func (p *Provider) Current() *Snapshot {
	return p.snapshot.Load()
}

// Refresh rebuilds the snapshot from the store and atomically swaps it in.
// In-flight requests keep using the snapshot they started with.
func (p *Provider) Refresh(ctx context.Context) error {
	data, err := p.store.LoadSnapshotData(ctx)
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}

	snap := NewSnapshot(data)
	p.snapshot.Store(snap)

	metrics.CatalogSize.Set(float64(snap.Len()))
	metrics.CatalogRefreshes.Inc()

	log := logging.WithComponent("catalog")
	log.Debug().
		Int("movies", snap.Len()).
		Msg("catalog snapshot refreshed")

	return nil
}
