package report

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

// Period is a resolved, validated date range.
type Period struct {
	From time.Time
	To   time.Time
}

func resolvePeriod(now time.Time, fromField, from, toField, to string) (Period, error) {
	var errs validator.ValidationErrors
	f, t := validator.ValidateDateRange(&errs, fromField, from, toField, to)
	if err := errs.Err(); err != nil {
		return Period{}, err
	}
	start, end := validator.DefaultRange(now, f, t)
	return Period{From: start, To: end}, nil
}

// ========================================
// CLIENT STATEMENT
// ========================================

type StatementRequest struct {
	ClientID string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

// Resolve validates the request. Missing dates default to the current month up to today.
func (r *StatementRequest) Resolve(now time.Time) (Period, error) {
	if validator.IsEmpty(r.ClientID) {
		return Period{}, validator.ValidationErrors{{Field: "client_id", Message: "client_id is required"}}
	}
	return resolvePeriod(now, "date_from", r.DateFrom, "date_to", r.DateTo)
}

type ClientStatementReport struct {
	Client   client.ClientResponse       `json:"client"`
	Summary  ClientStatementSummary      `json:"summary"`
	Jobs     job.ListJobResponse         `json:"jobs"`
	Payments payment.ListPaymentResponse `json:"payments"`
}

// ========================================
// VEHICLE REPORT
// ========================================

type VehicleReportRequest struct {
	VehicleID string
	DateFrom  string
	DateTo    string
	Page      int
	Limit     int
}

func (r *VehicleReportRequest) Resolve(now time.Time) (Period, error) {
	if validator.IsEmpty(r.VehicleID) {
		return Period{}, validator.ValidationErrors{{Field: "vehicle_id", Message: "vehicle_id is required"}}
	}
	return resolvePeriod(now, "date_from", r.DateFrom, "date_to", r.DateTo)
}

type VehicleReport struct {
	Vehicle  vehicle.VehicleResponse     `json:"vehicle"`
	Summary  VehicleReportSummary        `json:"summary"`
	Jobs     job.ListJobResponse         `json:"jobs"`
	Expenses expense.ListExpenseResponse `json:"expenses"`
}

// ========================================
// PAYSHEET / PAYSLIP
// ========================================

type PaysheetRequest struct {
	Month int
	Year  int
}

// Resolve validates the request. A zero month or year defaults to the current one.
func (r *PaysheetRequest) Resolve(now time.Time) (Period, error) {
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
		return Period{}, err
	}

	from, to := validator.MonthRange(r.Month, r.Year)
	return Period{From: from, To: to}, nil
}

type PayslipRequest struct {
	WorkerID   string
	PeriodFrom string
	PeriodTo   string
}

func (r *PayslipRequest) Resolve(now time.Time) (Period, error) {
	if validator.IsEmpty(r.WorkerID) {
		return Period{}, validator.ValidationErrors{{Field: "worker_id", Message: "worker_id is required"}}
	}
	return resolvePeriod(now, "period_from", r.PeriodFrom, "period_to", r.PeriodTo)
}
