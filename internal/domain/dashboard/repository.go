package dashboard

import "context"

type DashboardRepository interface {
	// GetCounts returns active vehicles, active workers and all clients in one query.
	GetCounts(ctx context.Context) (Counts, error)
}
