package billing

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// CalculateSalary nets what the worker earned against the payments given.
// Daily workers earn workedDays * daily_rate. Monthly workers earn the full
// monthly salary whatever their attendance. The balance keeps its sign.
func CalculateSalary(w worker.Worker, workedDays decimal.Decimal, payments []salary.Payment) salary.Summary {
	var calculated decimal.Decimal
	switch w.SalaryType {
	case worker.SalaryTypeDaily:
		calculated = workedDays.Mul(valueOr(w.DailyRate))
	case worker.SalaryTypeMonthly:
		calculated = valueOr(w.MonthlySalary)
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	calculated = round(calculated)
	paid = round(paid)
	return salary.Summary{
		CalculatedSalary: calculated,
		TotalPaid:        paid,
		Balance:          calculated.Sub(paid),
	}
}
