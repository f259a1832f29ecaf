// Package dashboard supplies the data behind the role dashboards. The
// Provider interface hides where the data comes from so the simulated
// implementation and a future HTTP-backed one are interchangeable
// without touching any UI logic.
package dashboard

import (
	"context"

	"ayosnow/internal/marketplace"
)

// Provider loads the dashboard aggregate for an identity. Implementations
// must honor context cancellation: a fetch superseded by a reseed or a
// teardown is abandoned, never delivered.
type Provider interface {
	FetchDashboard(ctx context.Context, user marketplace.User) (*marketplace.DashboardData, error)
}
