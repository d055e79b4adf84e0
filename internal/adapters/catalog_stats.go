// Package adapters contains small cross-module adapters so bounded contexts
// only depend on their own ports.
package adapters

import (
	"context"

	leadservice "leadops_backend/internal/leads/service"
	catalogservice "leadops_backend/internal/services/service"
)

// CatalogStatsAdapter exposes catalog counters through the lead module's
// dashboard port.
type CatalogStatsAdapter struct {
	svc *catalogservice.Service
}

// NewCatalogStatsAdapter wraps the catalog service.
func NewCatalogStatsAdapter(svc *catalogservice.Service) *CatalogStatsAdapter {
	return &CatalogStatsAdapter{svc: svc}
}

var _ leadservice.CatalogStatsProvider = (*CatalogStatsAdapter)(nil)

func (a *CatalogStatsAdapter) CatalogStats(ctx context.Context) (leadservice.CatalogStats, error) {
	stats, err := a.svc.Stats(ctx)
	if err != nil {
		return leadservice.CatalogStats{}, err
	}
	return leadservice.CatalogStats{
		Total:        stats.Total,
		Active:       stats.Active,
		TotalRevenue: stats.TotalRevenue,
	}, nil
}
