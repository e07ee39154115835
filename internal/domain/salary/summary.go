package salary

import "github.com/shopspring/decimal"

// Summary nets a worker's calculated salary against what was paid. Balance is
// negative when the worker was overpaid.
type Summary struct {
	CalculatedSalary decimal.Decimal `json:"calculated_salary"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	Balance          decimal.Decimal `json:"balance"`
}
