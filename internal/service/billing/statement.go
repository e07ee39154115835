package billing

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// BuildClientStatement sums the client's jobs by type and its payments over
// [from, to]. Pass the complete record set for the period, never one page of it.
func BuildClientStatement(clientID string, from, to time.Time, jobs []job.Job, payments []payment.Payment) report.ClientStatementSummary {
	s := report.ClientStatementSummary{
		ClientID: clientID,
		DateFrom: from.Format(validator.DateLayout),
		DateTo:   to.Format(validator.DateLayout),
	}

	jcb, lorry := decimal.Zero, decimal.Zero
	for _, j := range jobs {
		if j.ClientID != clientID || !inRange(j.Date, from, to) {
			continue
		}
		s.JobCount++
		switch j.Type {
		case job.JobTypeJCB:
			jcb = jcb.Add(j.TotalAmount)
		case job.JobTypeLorry:
			lorry = lorry.Add(j.TotalAmount)
		}
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.ClientID != clientID || !inRange(p.Date, from, to) {
			continue
		}
		s.PaymentCount++
		paid = paid.Add(p.Amount)
	}

	s.TotalJcb = round(jcb)
	s.TotalLorry = round(lorry)
	s.TotalJobsAmount = s.TotalJcb.Add(s.TotalLorry)
	s.TotalPayments = round(paid)
	s.OutstandingBalance = s.TotalJobsAmount.Sub(s.TotalPayments)
	return s
}

// BuildVehicleReport sets the vehicle's job revenue against its expenses over
// [from, to]. An expense belongs to the period its start date falls in.
func BuildVehicleReport(vehicleID string, from, to time.Time, jobs []job.Job, expenses []expense.VehicleExpense) report.VehicleReportSummary {
	s := report.VehicleReportSummary{
		VehicleID: vehicleID,
		DateFrom:  from.Format(validator.DateLayout),
		DateTo:    to.Format(validator.DateLayout),
	}

	jcb, lorry := decimal.Zero, decimal.Zero
	for _, j := range jobs {
		if j.VehicleID != vehicleID || !inRange(j.Date, from, to) {
			continue
		}
		switch j.Type {
		case job.JobTypeJCB:
			jcb = jcb.Add(j.TotalAmount)
		case job.JobTypeLorry:
			lorry = lorry.Add(j.TotalAmount)
		}
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.VehicleID != vehicleID || !inRange(e.Date, from, to) {
			continue
		}
		category := strings.TrimSpace(e.Category)
		byCategory[category] = byCategory[category].Add(e.Amount)
	}

	s.ExpensesByCategory = make([]report.CategoryTotal, 0, len(byCategory))
	total := decimal.Zero
	for category, amount := range byCategory {
		amount = round(amount)
		s.ExpensesByCategory = append(s.ExpensesByCategory, report.CategoryTotal{Category: category, Amount: amount})
		total = total.Add(amount)
	}
	sort.Slice(s.ExpensesByCategory, func(i, k int) bool {
		return s.ExpensesByCategory[i].Category < s.ExpensesByCategory[k].Category
	})

	s.TotalJcbRevenue = round(jcb)
	s.TotalLorryRevenue = round(lorry)
	s.TotalRevenue = s.TotalJcbRevenue.Add(s.TotalLorryRevenue)
	s.TotalExpenses = total
	s.NetIncome = s.TotalRevenue.Sub(s.TotalExpenses)
	return s
}
