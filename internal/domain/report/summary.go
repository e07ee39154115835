package report

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// ClientStatementSummary totals a client's jobs and payments over a period.
// OutstandingBalance is negative when the client is in credit.
type ClientStatementSummary struct {
	ClientID           string          `json:"client_id"`
	DateFrom           string          `json:"date_from"`
	DateTo             string          `json:"date_to"`
	TotalJcb           decimal.Decimal `json:"total_jcb"`
	TotalLorry         decimal.Decimal `json:"total_lorry"`
	TotalJobsAmount    decimal.Decimal `json:"total_jobs_amount"`
	TotalPayments      decimal.Decimal `json:"total_payments"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	JobCount           int             `json:"job_count"`
	PaymentCount       int             `json:"payment_count"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// VehicleReportSummary is a vehicle's revenue against its expenses over a period.
type VehicleReportSummary struct {
	VehicleID          string          `json:"vehicle_id"`
	DateFrom           string          `json:"date_from"`
	DateTo             string          `json:"date_to"`
	TotalJcbRevenue    decimal.Decimal `json:"total_jcb_revenue"`
	TotalLorryRevenue  decimal.Decimal `json:"total_lorry_revenue"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetIncome          decimal.Decimal `json:"net_income"`
}

type PayrollWorker struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Role          *string          `json:"role,omitempty"`
	SalaryType    string           `json:"salary_type"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
}

type PaysheetRow struct {
	Worker     PayrollWorker      `json:"worker"`
	Attendance attendance.Summary `json:"attendance"`
	Salary     salary.Summary     `json:"salary"`
}

type GrandTotal struct {
	TotalCalculated decimal.Decimal `json:"total_calculated"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
}

type PaysheetSummary struct {
	Month      int           `json:"month"`
	Year       int           `json:"year"`
	PeriodFrom string        `json:"period_from"`
	PeriodTo   string        `json:"period_to"`
	Workers    []PaysheetRow `json:"workers"`
	GrandTotal GrandTotal    `json:"grand_total"`
}

type PayslipSummary struct {
	PaysheetRow
	PeriodFrom string                   `json:"period_from"`
	PeriodTo   string                   `json:"period_to"`
	Payments   []salary.PaymentResponse `json:"payments"`
}
