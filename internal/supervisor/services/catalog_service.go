// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fairlens/fairlens/internal/metrics"
)

// CatalogRefresher rebuilds the catalog snapshot from the store.
// Satisfied by *catalog.Provider.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// refreshTimeout bounds a single snapshot rebuild.
const refreshTimeout = time.Minute

// CatalogRefreshService periodically rebuilds the catalog snapshot so that
// newly submitted ratings and imported artifacts become visible without a
// restart. A failed refresh keeps the previous snapshot in place.
type CatalogRefreshService struct {
	provider CatalogRefresher
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCatalogRefreshService creates the refresh loop. A non-positive interval
// disables periodic refresh; Serve then just waits for cancellation.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(provider CatalogRefresher, interval time.Duration, logger zerolog.Logger) *CatalogRefreshService {
	return &CatalogRefreshService{
		provider: provider,
		interval: interval,
		logger:   logger.With().Str("service", "catalog-refresh").Logger(),
		name:     "catalog-refresh",
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("periodic catalog refresh disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().
		Dur("interval", s.interval).
		Msg("catalog refresh service running")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh performs one bounded snapshot rebuild.
func (s *CatalogRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	if err := s.provider.Refresh(refreshCtx); err != nil {
		metrics.CatalogRefreshErrors.Inc()
		s.logger.Warn().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
	}
}

// String returns the service name for supervisor logging.
func (s *CatalogRefreshService) String() string {
	return s.name
}
