package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

// Exported documents always carry the full period; paging applies to JSON only.

// ExportClientStatement implements report.ReportService.
func (s *ReportServiceImpl) ExportClientStatement(ctx context.Context, req report.StatementRequest, format export.Format) (export.File, error) {
	data, err := s.loadClientStatement(ctx, req)
	if err != nil {
		return export.File{}, err
	}

	jobRows := make([][]string, 0, len(data.jobs))
	for _, j := range data.jobs {
		jobRows = append(jobRows, []string{
			j.Date.Format(validator.DateLayout),
			string(j.Type),
			export.Text(j.VehicleRegistrationNo),
			string(j.RateType),
			export.Money(j.RateAmount),
			export.Money(j.TotalAmount),
			string(j.Status),
		})
	}
	paymentRows := make([][]string, 0, len(data.payments))
	for _, p := range data.payments {
		paymentRows = append(paymentRows, []string{
			p.Date.Format(validator.DateLayout),
			string(p.Method),
			export.Text(p.Reference),
			export.Money(p.Amount),
		})
	}

	sum := data.summary
	doc := export.Document{
		Company: s.companyName,
		Title:   "Client Statement",
		Meta: []export.Field{
			{Label: "Client", Value: data.client.Name},
			{Label: "Period", Value: sum.DateFrom + " to " + sum.DateTo},
		},
		Tables: []export.Table{
			{
				Title: "Jobs",
				Columns: []export.Column{
					{Header: "Date", Width: 2},
					{Header: "Type", Width: 1},
					{Header: "Vehicle", Width: 2},
					{Header: "Rate type", Width: 1.5},
					{Header: "Rate", Width: 1.5, Numeric: true},
					{Header: "Amount", Width: 1.5, Numeric: true},
					{Header: "Status", Width: 1.5},
				},
				Rows:   jobRows,
				Footer: []string{"Total", "", "", "", "", export.Money(sum.TotalJobsAmount), ""},
			},
			{
				Title: "Payments",
				Columns: []export.Column{
					{Header: "Date", Width: 2},
					{Header: "Method", Width: 2},
					{Header: "Reference", Width: 3},
					{Header: "Amount", Width: 1.5, Numeric: true},
				},
				Rows:   paymentRows,
				Footer: []string{"Total", "", "", export.Money(sum.TotalPayments)},
			},
		},
		Totals: []export.Field{
			{Label: "JCB work", Value: export.Money(sum.TotalJcb)},
			{Label: "Lorry work", Value: export.Money(sum.TotalLorry)},
			{Label: "Total billed", Value: export.Money(sum.TotalJobsAmount)},
			{Label: "Total received", Value: export.Money(sum.TotalPayments)},
			{Label: "Outstanding balance", Value: export.Money(sum.OutstandingBalance)},
		},
		GeneratedAt: s.now(),
	}

	return export.Render(doc, format, fileName("statement", data.client.Name, sum.DateFrom, sum.DateTo))
}

// ExportVehicleReport implements report.ReportService.
func (s *ReportServiceImpl) ExportVehicleReport(ctx context.Context, req report.VehicleReportRequest, format export.Format) (export.File, error) {
	data, err := s.loadVehicleReport(ctx, req)
	if err != nil {
		return export.File{}, err
	}

	jobRows := make([][]string, 0, len(data.jobs))
	for _, j := range data.jobs {
		jobRows = append(jobRows, []string{
			j.Date.Format(validator.DateLayout),
			string(j.Type),
			export.Text(j.ClientName),
			export.Money(j.TotalAmount),
		})
	}
	expenseRows := make([][]string, 0, len(data.expenses))
	for _, e := range data.expenses {
		expenseRows = append(expenseRows, []string{
			e.Date.Format(validator.DateLayout),
			e.Category,
			export.Text(e.Description),
			export.Money(e.Amount),
		})
	}
	categoryRows := make([][]string, 0, len(data.summary.ExpensesByCategory))
	for _, c := range data.summary.ExpensesByCategory {
		categoryRows = append(categoryRows, []string{c.Category, export.Money(c.Amount)})
	}

	sum := data.summary
	doc := export.Document{
		Company: s.companyName,
		Title:   "Vehicle Report",
		Meta: []export.Field{
			{Label: "Vehicle", Value: data.vehicle.RegistrationNo},
			{Label: "Type", Value: string(data.vehicle.Type)},
			{Label: "Period", Value: sum.DateFrom + " to " + sum.DateTo},
		},
		Tables: []export.Table{
			{
				Title: "Jobs",
				Columns: []export.Column{
					{Header: "Date", Width: 2},
					{Header: "Type", Width: 1},
					{Header: "Client", Width: 3},
					{Header: "Amount", Width: 1.5, Numeric: true},
				},
				Rows:   jobRows,
				Footer: []string{"Total", "", "", export.Money(sum.TotalRevenue)},
			},
			{
				Title: "Expenses",
				Columns: []export.Column{
					{Header: "Date", Width: 2},
					{Header: "Category", Width: 2},
					{Header: "Description", Width: 3},
					{Header: "Amount", Width: 1.5, Numeric: true},
				},
				Rows:   expenseRows,
				Footer: []string{"Total", "", "", export.Money(sum.TotalExpenses)},
			},
			{
				Title: "Expenses by category",
				Columns: []export.Column{
					{Header: "Category", Width: 3},
					{Header: "Amount", Width: 1.5, Numeric: true},
				},
				Rows: categoryRows,
			},
		},
		Totals: []export.Field{
			{Label: "JCB revenue", Value: export.Money(sum.TotalJcbRevenue)},
			{Label: "Lorry revenue", Value: export.Money(sum.TotalLorryRevenue)},
			{Label: "Total revenue", Value: export.Money(sum.TotalRevenue)},
			{Label: "Total expenses", Value: export.Money(sum.TotalExpenses)},
			{Label: "Net income", Value: export.Money(sum.NetIncome)},
		},
		GeneratedAt: s.now(),
	}

	return export.Render(doc, format, fileName("vehicle", data.vehicle.RegistrationNo, sum.DateFrom, sum.DateTo))
}

// ExportPaysheet implements report.ReportService.
func (s *ReportServiceImpl) ExportPaysheet(ctx context.Context, req report.PaysheetRequest, format export.Format) (export.File, error) {
	sheet, err := s.Paysheet(ctx, req)
	if err != nil {
		return export.File{}, err
	}

	rows := make([][]string, 0, len(sheet.Workers))
	for _, row := range sheet.Workers {
		rows = append(rows, []string{
			row.Worker.Name,
			row.Worker.SalaryType,
			strconv.Itoa(row.Attendance.PresentDays),
			strconv.Itoa(row.Attendance.HalfDays),
			strconv.Itoa(row.Attendance.AbsentDays),
			row.Attendance.WorkedDays.String(),
			export.Money(row.Salary.CalculatedSalary),
			export.Money(row.Salary.TotalPaid),
			export.Money(row.Salary.Balance),
		})
	}

	period := fmt.Sprintf("%02d/%d", sheet.Month, sheet.Year)
	doc := export.Document{
		Company: s.companyName,
		Title:   "Paysheet " + period,
		Meta: []export.Field{
			{Label: "Period", Value: sheet.PeriodFrom + " to " + sheet.PeriodTo},
			{Label: "Workers", Value: strconv.Itoa(len(sheet.Workers))},
		},
		Tables: []export.Table{{
			Title: "Workers",
			Columns: []export.Column{
				{Header: "Name", Width: 3},
				{Header: "Salary type", Width: 1.5},
				{Header: "Present", Width: 1, Numeric: true},
				{Header: "Half", Width: 1, Numeric: true},
				{Header: "Absent", Width: 1, Numeric: true},
				{Header: "Worked", Width: 1, Numeric: true},
				{Header: "Salary", Width: 1.5, Numeric: true},
				{Header: "Paid", Width: 1.5, Numeric: true},
				{Header: "Balance", Width: 1.5, Numeric: true},
			},
			Rows: rows,
			Footer: []string{
				"Total", "", "", "", "", "",
				export.Money(sheet.GrandTotal.TotalCalculated),
				export.Money(sheet.GrandTotal.TotalPaid),
				export.Money(sheet.GrandTotal.TotalBalance),
			},
		}},
		Totals: []export.Field{
			{Label: "Total salary", Value: export.Money(sheet.GrandTotal.TotalCalculated)},
			{Label: "Total paid", Value: export.Money(sheet.GrandTotal.TotalPaid)},
			{Label: "Balance", Value: export.Money(sheet.GrandTotal.TotalBalance)},
		},
		GeneratedAt: s.now(),
	}

	return export.Render(doc, format, fmt.Sprintf("paysheet-%d-%02d", sheet.Year, sheet.Month))
}

// ExportPayslip implements report.ReportService.
func (s *ReportServiceImpl) ExportPayslip(ctx context.Context, req report.PayslipRequest, format export.Format) (export.File, error) {
	slip, err := s.Payslip(ctx, req)
	if err != nil {
		return export.File{}, err
	}

	rows := make([][]string, 0, len(slip.Payments))
	for _, p := range slip.Payments {
		rows = append(rows, []string{
			p.PaymentDate,
			p.PeriodFrom + " to " + p.PeriodTo,
			p.WorkedDays.String(),
			export.Money(p.Amount),
		})
	}

	rate := "-"
	if slip.Worker.DailyRate != nil {
		rate = export.Money(*slip.Worker.DailyRate) + " / day"
	} else if slip.Worker.MonthlySalary != nil {
		rate = export.Money(*slip.Worker.MonthlySalary) + " / month"
	}

	doc := export.Document{
		Company: s.companyName,
		Title:   "Payslip",
		Meta: []export.Field{
			{Label: "Worker", Value: slip.Worker.Name},
			{Label: "Role", Value: export.Text(slip.Worker.Role)},
			{Label: "Salary", Value: rate},
			{Label: "Period", Value: slip.PeriodFrom + " to " + slip.PeriodTo},
			{Label: "Present days", Value: strconv.Itoa(slip.Attendance.PresentDays)},
			{Label: "Half days", Value: strconv.Itoa(slip.Attendance.HalfDays)},
			{Label: "Absent days", Value: strconv.Itoa(slip.Attendance.AbsentDays)},
			{Label: "Worked days", Value: slip.Attendance.WorkedDays.String()},
		},
		Tables: []export.Table{{
			Title: "Payments",
			Columns: []export.Column{
				{Header: "Paid on", Width: 2},
				{Header: "For period", Width: 3.5},
				{Header: "Days", Width: 1, Numeric: true},
				{Header: "Amount", Width: 1.5, Numeric: true},
			},
			Rows:   rows,
			Footer: []string{"Total", "", "", export.Money(slip.Salary.TotalPaid)},
		}},
		Totals: []export.Field{
			{Label: "Calculated salary", Value: export.Money(slip.Salary.CalculatedSalary)},
			{Label: "Total paid", Value: export.Money(slip.Salary.TotalPaid)},
			{Label: "Balance", Value: export.Money(slip.Salary.Balance)},
		},
		GeneratedAt: s.now(),
	}

	return export.Render(doc, format, fileName("payslip", slip.Worker.Name, slip.PeriodFrom, slip.PeriodTo))
}

func fileName(kind, subject, from, to string) string {
	subject = strings.ToLower(strings.Join(strings.Fields(subject), "-"))
	return fmt.Sprintf("%s-%s-%s-%s", kind, subject, from, to)
}
