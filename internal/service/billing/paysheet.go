package billing

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// BuildMonthlyPaysheet runs attendance and salary for every active worker over the
// calendar month. Only salary payments whose payment_date falls in the month count.
func BuildMonthlyPaysheet(month, year int, workers []worker.Worker, records []attendance.WorkerAttendance, payments []salary.Payment) report.PaysheetSummary {
	from, to := validator.MonthRange(month, year)

	sheet := report.PaysheetSummary{
		Month:      month,
		Year:       year,
		PeriodFrom: from.Format(validator.DateLayout),
		PeriodTo:   to.Format(validator.DateLayout),
		Workers:    make([]report.PaysheetRow, 0, len(workers)),
		GrandTotal: report.GrandTotal{
			TotalCalculated: decimal.Zero,
			TotalPaid:       decimal.Zero,
			TotalBalance:    decimal.Zero,
		},
	}

	for _, w := range workers {
		if !w.IsActive {
			continue
		}
		row := payrollRow(w, from, to, records, payments)
		sheet.Workers = append(sheet.Workers, row)
		sheet.GrandTotal.TotalCalculated = sheet.GrandTotal.TotalCalculated.Add(row.Salary.CalculatedSalary)
		sheet.GrandTotal.TotalPaid = sheet.GrandTotal.TotalPaid.Add(row.Salary.TotalPaid)
		sheet.GrandTotal.TotalBalance = sheet.GrandTotal.TotalBalance.Add(row.Salary.Balance)
	}

	return sheet
}

// BuildWorkerPayslip is the paysheet computation for one worker over any period.
func BuildWorkerPayslip(w worker.Worker, from, to time.Time, records []attendance.WorkerAttendance, payments []salary.Payment) report.PayslipSummary {
	slip := report.PayslipSummary{
		PaysheetRow: payrollRow(w, from, to, records, payments),
		PeriodFrom:  from.Format(validator.DateLayout),
		PeriodTo:    to.Format(validator.DateLayout),
		Payments:    []salary.PaymentResponse{},
	}

	for _, p := range paymentsFor(w.ID, from, to, payments) {
		slip.Payments = append(slip.Payments, salary.NewPaymentResponse(p))
	}
	return slip
}

func payrollRow(w worker.Worker, from, to time.Time, records []attendance.WorkerAttendance, payments []salary.Payment) report.PaysheetRow {
	summary := AggregateAttendance(w.ID, from, to, records)
	return report.PaysheetRow{
		Worker: report.PayrollWorker{
			ID:            w.ID,
			Name:          w.Name,
			Role:          w.Role,
			SalaryType:    string(w.SalaryType),
			DailyRate:     w.DailyRate,
			MonthlySalary: w.MonthlySalary,
		},
		Attendance: summary,
		Salary:     CalculateSalary(w, summary.WorkedDays, paymentsFor(w.ID, from, to, payments)),
	}
}

// paymentsFor returns the worker's payments paid inside [from, to], oldest first.
func paymentsFor(workerID string, from, to time.Time, payments []salary.Payment) []salary.Payment {
	var out []salary.Payment
	for _, p := range payments {
		if p.WorkerID == workerID && inRange(p.PaymentDate, from, to) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].PaymentDate.Before(out[k].PaymentDate)
	})
	return out
}
