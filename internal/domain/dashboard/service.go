package dashboard

import "context"

type DashboardService interface {
	GetDashboard(ctx context.Context, req DashboardRequest) (DashboardResponse, error)
}
