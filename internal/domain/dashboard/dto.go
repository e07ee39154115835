package dashboard

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DashboardRequest struct {
	Month int
	Year  int
}

// Resolve validates the request and returns the month's first and last day.
// A zero month or year defaults to the current one.
func (r *DashboardRequest) Resolve(now time.Time) (time.Time, time.Time, error) {
	if r.Month == 0 {
		r.Month = int(now.Month())
	}
	if r.Year == 0 {
		r.Year = now.Year()
	}

	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year is out of range")
	}
	if err := errs.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, to := validator.MonthRange(r.Month, r.Year)
	return from, to, nil
}

// Counts are fleet-wide and do not depend on the month.
type Counts struct {
	ActiveVehicles int64 `json:"active_vehicles"`
	ActiveWorkers  int64 `json:"active_workers"`
	Clients        int64 `json:"clients"`
}

// ClientBalance is one client's month: billed minus received.
type ClientBalance struct {
	ClientID    string          `json:"client_id"`
	ClientName  string          `json:"client_name"`
	Billed      decimal.Decimal `json:"billed"`
	Received    decimal.Decimal `json:"received"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type DashboardResponse struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	PeriodFrom       string          `json:"period_from"`
	PeriodTo         string          `json:"period_to"`
	Counts           Counts          `json:"counts"`
	RevenueJcb       decimal.Decimal `json:"revenue_jcb"`
	RevenueLorry     decimal.Decimal `json:"revenue_lorry"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	PendingJobs      int             `json:"pending_jobs"`
	// TopOutstanding lists the clients owing the most this month, largest first.
	TopOutstanding []ClientBalance `json:"top_outstanding"`
}
