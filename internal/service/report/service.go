package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/billing"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

// Repositories groups the stores a report reads from.
type Repositories struct {
	Client     client.ClientRepository
	Vehicle    vehicle.VehicleRepository
	Worker     worker.WorkerRepository
	Job        job.JobRepository
	Payment    payment.PaymentRepository
	Expense    expense.ExpenseRepository
	Attendance attendance.AttendanceRepository
	Salary     salary.SalaryPaymentRepository
}

type ReportServiceImpl struct {
	repos       Repositories
	fileService file.FileService
	companyName string
	now         func() time.Time
}

func NewReportService(repos Repositories, fileService file.FileService, companyName string) report.ReportService {
	return &ReportServiceImpl{
		repos:       repos,
		fileService: fileService,
		companyName: companyName,
		now:         time.Now,
	}
}

// clientStatementData is everything both the JSON statement and its export need.
type clientStatementData struct {
	client   client.Client
	period   report.Period
	jobs     []job.Job
	payments []payment.Payment
	summary  report.ClientStatementSummary
}

func (s *ReportServiceImpl) loadClientStatement(ctx context.Context, req report.StatementRequest) (clientStatementData, error) {
	period, err := req.Resolve(s.now())
	if err != nil {
		return clientStatementData{}, err
	}
	c, err := s.repos.Client.GetByID(ctx, req.ClientID)
	if err != nil {
		return clientStatementData{}, err
	}

	from, to := periodStrings(period)
	jobs, err := s.repos.Job.FindAll(ctx, job.JobFilter{ClientID: &c.ID, DateFrom: &from, DateTo: &to, SortBy: "date", SortOrder: "asc"})
	if err != nil {
		return clientStatementData{}, fmt.Errorf("failed to load jobs: %w", err)
	}
	payments, err := s.repos.Payment.FindAll(ctx, payment.PaymentFilter{ClientID: &c.ID, DateFrom: &from, DateTo: &to})
	if err != nil {
		return clientStatementData{}, fmt.Errorf("failed to load payments: %w", err)
	}

	return clientStatementData{
		client:   c,
		period:   period,
		jobs:     jobs,
		payments: payments,
		summary:  billing.BuildClientStatement(c.ID, period.From, period.To, jobs, payments),
	}, nil
}

// ClientStatement implements report.ReportService.
func (s *ReportServiceImpl) ClientStatement(ctx context.Context, req report.StatementRequest) (report.ClientStatementReport, error) {
	data, err := s.loadClientStatement(ctx, req)
	if err != nil {
		return report.ClientStatementReport{}, err
	}

	page, limit := normalizePage(req.Page, req.Limit)
	from, to := periodStrings(data.period)

	jobPage, jobTotal, err := s.repos.Job.List(ctx, job.JobFilter{
		ClientID: &data.client.ID, DateFrom: &from, DateTo: &to,
		Page: page, Limit: limit, SortBy: "date", SortOrder: "asc",
	})
	if err != nil {
		return report.ClientStatementReport{}, fmt.Errorf("failed to list jobs: %w", err)
	}
	paymentPage, paymentTotal, err := s.repos.Payment.List(ctx, payment.PaymentFilter{
		ClientID: &data.client.ID, DateFrom: &from, DateTo: &to,
		Page: page, Limit: limit,
	})
	if err != nil {
		return report.ClientStatementReport{}, fmt.Errorf("failed to list payments: %w", err)
	}

	paymentResponses := make([]payment.PaymentResponse, 0, len(paymentPage))
	for _, p := range paymentPage {
		paymentResponses = append(paymentResponses, payment.NewPaymentResponse(p))
	}

	return report.ClientStatementReport{
		Client:  client.NewClientResponse(data.client),
		Summary: data.summary,
		Jobs: job.ListJobResponse{
			Data:       job.NewJobResponses(jobPage),
			TotalCount: jobTotal,
			Page:       page,
			Limit:      limit,
		},
		Payments: payment.ListPaymentResponse{
			Data:       paymentResponses,
			TotalCount: paymentTotal,
			Page:       page,
			Limit:      limit,
		},
	}, nil
}

type vehicleReportData struct {
	vehicle  vehicle.Vehicle
	period   report.Period
	jobs     []job.Job
	expenses []expense.VehicleExpense
	summary  report.VehicleReportSummary
}

func (s *ReportServiceImpl) loadVehicleReport(ctx context.Context, req report.VehicleReportRequest) (vehicleReportData, error) {
	period, err := req.Resolve(s.now())
	if err != nil {
		return vehicleReportData{}, err
	}
	v, err := s.repos.Vehicle.GetByID(ctx, req.VehicleID)
	if err != nil {
		return vehicleReportData{}, err
	}

	from, to := periodStrings(period)
	jobs, err := s.repos.Job.FindAll(ctx, job.JobFilter{VehicleID: &v.ID, DateFrom: &from, DateTo: &to, SortBy: "date", SortOrder: "asc"})
	if err != nil {
		return vehicleReportData{}, fmt.Errorf("failed to load jobs: %w", err)
	}
	expenses, err := s.repos.Expense.FindAll(ctx, expense.ExpenseFilter{VehicleID: &v.ID, DateFrom: &from, DateTo: &to})
	if err != nil {
		return vehicleReportData{}, fmt.Errorf("failed to load expenses: %w", err)
	}

	return vehicleReportData{
		vehicle:  v,
		period:   period,
		jobs:     jobs,
		expenses: expenses,
		summary:  billing.BuildVehicleReport(v.ID, period.From, period.To, jobs, expenses),
	}, nil
}

// VehicleReport implements report.ReportService.
func (s *ReportServiceImpl) VehicleReport(ctx context.Context, req report.VehicleReportRequest) (report.VehicleReport, error) {
	data, err := s.loadVehicleReport(ctx, req)
	if err != nil {
		return report.VehicleReport{}, err
	}

	page, limit := normalizePage(req.Page, req.Limit)
	from, to := periodStrings(data.period)

	jobPage, jobTotal, err := s.repos.Job.List(ctx, job.JobFilter{
		VehicleID: &data.vehicle.ID, DateFrom: &from, DateTo: &to,
		Page: page, Limit: limit, SortBy: "date", SortOrder: "asc",
	})
	if err != nil {
		return report.VehicleReport{}, fmt.Errorf("failed to list jobs: %w", err)
	}
	expensePage, expenseTotal, err := s.repos.Expense.List(ctx, expense.ExpenseFilter{
		VehicleID: &data.vehicle.ID, DateFrom: &from, DateTo: &to,
		Page: page, Limit: limit,
	})
	if err != nil {
		return report.VehicleReport{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenseResponses := make([]expense.ExpenseResponse, 0, len(expensePage))
	for _, e := range expensePage {
		expenseResponses = append(expenseResponses, expense.NewExpenseResponse(e, s.fileService.URL))
	}

	return report.VehicleReport{
		Vehicle: vehicle.NewVehicleResponse(data.vehicle),
		Summary: data.summary,
		Jobs: job.ListJobResponse{
			Data:       job.NewJobResponses(jobPage),
			TotalCount: jobTotal,
			Page:       page,
			Limit:      limit,
		},
		Expenses: expense.ListExpenseResponse{
			Data:       expenseResponses,
			TotalCount: expenseTotal,
			Page:       page,
			Limit:      limit,
		},
	}, nil
}

// Paysheet implements report.ReportService.
func (s *ReportServiceImpl) Paysheet(ctx context.Context, req report.PaysheetRequest) (report.PaysheetSummary, error) {
	period, err := req.Resolve(s.now())
	if err != nil {
		return report.PaysheetSummary{}, err
	}

	workers, err := s.repos.Worker.ListActive(ctx)
	if err != nil {
		return report.PaysheetSummary{}, fmt.Errorf("failed to load workers: %w", err)
	}
	records, err := s.repos.Attendance.FindByRange(ctx, period.From, period.To)
	if err != nil {
		return report.PaysheetSummary{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	payments, err := s.repos.Salary.FindByPaymentDate(ctx, nil, period.From, period.To)
	if err != nil {
		return report.PaysheetSummary{}, fmt.Errorf("failed to load salary payments: %w", err)
	}

	return billing.BuildMonthlyPaysheet(req.Month, req.Year, workers, records, payments), nil
}

// Payslip implements report.ReportService.
func (s *ReportServiceImpl) Payslip(ctx context.Context, req report.PayslipRequest) (report.PayslipSummary, error) {
	period, err := req.Resolve(s.now())
	if err != nil {
		return report.PayslipSummary{}, err
	}

	w, err := s.repos.Worker.GetByID(ctx, req.WorkerID)
	if err != nil {
		return report.PayslipSummary{}, err
	}
	records, err := s.repos.Attendance.FindByWorkerAndRange(ctx, w.ID, period.From, period.To)
	if err != nil {
		return report.PayslipSummary{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	payments, err := s.repos.Salary.FindByPaymentDate(ctx, &w.ID, period.From, period.To)
	if err != nil {
		return report.PayslipSummary{}, fmt.Errorf("failed to load salary payments: %w", err)
	}

	return billing.BuildWorkerPayslip(w, period.From, period.To, records, payments), nil
}

func periodStrings(p report.Period) (string, string) {
	return p.From.Format(validator.DateLayout), p.To.Format(validator.DateLayout)
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
