package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetCounts returns active vehicles, active workers and clients in a single query
func (r *dashboardRepositoryImpl) GetCounts(ctx context.Context) (dashboard.Counts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM vehicles WHERE is_active = TRUE) AS active_vehicles,
			(SELECT COUNT(*) FROM workers WHERE is_active = TRUE) AS active_workers,
			(SELECT COUNT(*) FROM clients) AS clients
	`

	var counts dashboard.Counts
	err := q.QueryRow(ctx, query).Scan(&counts.ActiveVehicles, &counts.ActiveWorkers, &counts.Clients)
	if err != nil {
		return dashboard.Counts{}, fmt.Errorf("failed to get dashboard counts: %w", err)
	}
	return counts, nil
}
