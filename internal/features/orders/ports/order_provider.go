package ports

import (
	"context"

	"orne-dashboard/internal/features/orders/domain"
)

// DashboardService defines the primary port for the orders dashboard.
type DashboardService interface {
	// GetDashboard returns the current snapshot, refreshed from the
	// upstreams when the cached one is stale or forceRefresh is set.
	GetDashboard(ctx context.Context, forceRefresh bool) (*domain.DashboardSnapshot, error)
}

// OrderProvider defines the interface for retrieving shipped orders
// from the store. This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// ListInTransit returns every order shipped but not yet delivered
	// within the trailing window, already mapped to the domain shape
	// and limited to orders with at least one tracked fulfillment.
	ListInTransit(ctx context.Context) ([]domain.Order, error)
}
