package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns counts and month-to-date totals for ?month=&year=
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	month, ok := queryInt(r, "month")
	if !ok {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	var req dashboard.DashboardRequest
	if month != nil {
		req.Month = *month
	}
	if year != nil {
		req.Year = *year
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
