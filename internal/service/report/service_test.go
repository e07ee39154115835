package report

import (
	"bytes"
	"context"
	"testing"
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
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func within(t time.Time, from, to *string) bool {
	if from != nil {
		if f, ok := validator.IsValidDate(*from); ok && t.Before(f) {
			return false
		}
	}
	if to != nil {
		if e, ok := validator.IsValidDate(*to); ok && t.After(e) {
			return false
		}
	}
	return true
}

func paginate[T any](all []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(all) {
		return nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

type fakeJobs struct {
	job.JobRepository
	jobs []job.Job
}

func (f fakeJobs) FindAll(_ context.Context, filter job.JobFilter) ([]job.Job, error) {
	var out []job.Job
	for _, j := range f.jobs {
		if filter.ClientID != nil && j.ClientID != *filter.ClientID {
			continue
		}
		if filter.VehicleID != nil && j.VehicleID != *filter.VehicleID {
			continue
		}
		if !within(j.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f fakeJobs) List(ctx context.Context, filter job.JobFilter) ([]job.Job, int64, error) {
	all, _ := f.FindAll(ctx, filter)
	return paginate(all, filter.Page, filter.Limit), int64(len(all)), nil
}

type fakePayments struct {
	payment.PaymentRepository
	payments []payment.Payment
}

func (f fakePayments) FindAll(_ context.Context, filter payment.PaymentFilter) ([]payment.Payment, error) {
	var out []payment.Payment
	for _, p := range f.payments {
		if filter.ClientID != nil && p.ClientID != *filter.ClientID {
			continue
		}
		if !within(p.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f fakePayments) List(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	all, _ := f.FindAll(ctx, filter)
	return paginate(all, filter.Page, filter.Limit), int64(len(all)), nil
}

type fakeExpenses struct {
	expense.ExpenseRepository
	expenses []expense.VehicleExpense
}

func (f fakeExpenses) FindAll(_ context.Context, filter expense.ExpenseFilter) ([]expense.VehicleExpense, error) {
	var out []expense.VehicleExpense
	for _, e := range f.expenses {
		if filter.VehicleID != nil && e.VehicleID != *filter.VehicleID {
			continue
		}
		if !within(e.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f fakeExpenses) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.VehicleExpense, int64, error) {
	all, _ := f.FindAll(ctx, filter)
	return paginate(all, filter.Page, filter.Limit), int64(len(all)), nil
}

type fakeClients struct{ client.ClientRepository }

func (fakeClients) GetByID(_ context.Context, id string) (client.Client, error) {
	if id != "c1" {
		return client.Client{}, client.ErrClientNotFound
	}
	return client.Client{ID: id, Name: "Builder & Sons"}, nil
}

type fakeVehicles struct{ vehicle.VehicleRepository }

func (fakeVehicles) GetByID(_ context.Context, id string) (vehicle.Vehicle, error) {
	if id != "v1" {
		return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
	}
	return vehicle.Vehicle{ID: id, RegistrationNo: "KA-01-1234", Type: vehicle.TypeJCB}, nil
}

type fakeWorkers struct {
	worker.WorkerRepository
	workers []worker.Worker
}

func (f fakeWorkers) GetByID(_ context.Context, id string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f fakeWorkers) ListActive(_ context.Context) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	attendance.AttendanceRepository
	records []attendance.WorkerAttendance
}

func (f fakeAttendance) FindByRange(_ context.Context, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	var out []attendance.WorkerAttendance
	for _, r := range f.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeAttendance) FindByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	all, _ := f.FindByRange(ctx, from, to)
	var out []attendance.WorkerAttendance
	for _, r := range all {
		if r.WorkerID == workerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSalaries struct {
	salary.SalaryPaymentRepository
	payments []salary.Payment
}

func (f fakeSalaries) FindByPaymentDate(_ context.Context, workerID *string, from, to time.Time) ([]salary.Payment, error) {
	var out []salary.Payment
	for _, p := range f.payments {
		if workerID != nil && p.WorkerID != *workerID {
			continue
		}
		if !p.PaymentDate.Before(from) && !p.PaymentDate.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func newReportService(t *testing.T) *ReportServiceImpl {
	t.Helper()

	local, err := storage.NewLocalStorage(t.TempDir(), "http://files.test")
	require.NoError(t, err)

	hours := decimal.NewFromInt(8)
	rate := money(500)
	monthly := money(30000)
	repos := Repositories{
		Client:  fakeClients{},
		Vehicle: fakeVehicles{},
		Job: fakeJobs{jobs: []job.Job{
			{ID: "j1", Type: job.JobTypeJCB, ClientID: "c1", VehicleID: "v1", Date: day(1), TotalHours: &hours, TotalAmount: money(800)},
			{ID: "j2", Type: job.JobTypeJCB, ClientID: "c1", VehicleID: "v1", Date: day(2), TotalAmount: money(700)},
			{ID: "j3", Type: job.JobTypeLorry, ClientID: "c1", VehicleID: "v2", Date: day(3), TotalAmount: money(1500)},
			{ID: "j4", Type: job.JobTypeLorry, ClientID: "c1", VehicleID: "v1", Date: day(4), TotalAmount: money(250)},
			{ID: "j5", Type: job.JobTypeJCB, ClientID: "c1", VehicleID: "v1", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), TotalAmount: money(9999)},
		}},
		Payment: fakePayments{payments: []payment.Payment{
			{ID: "p1", ClientID: "c1", Date: day(5), Amount: money(1000), Method: payment.MethodCash},
			{ID: "p2", ClientID: "c1", Date: day(6), Amount: money(500), Method: payment.MethodUPI},
			{ID: "p3", ClientID: "c2", Date: day(6), Amount: money(700), Method: payment.MethodUPI},
		}},
		Expense: fakeExpenses{expenses: []expense.VehicleExpense{
			{ID: "e1", VehicleID: "v1", Category: "fuel", Date: day(1), Amount: money(300)},
			{ID: "e2", VehicleID: "v1", Category: "repair", Date: day(2), Amount: money(200)},
			{ID: "e3", VehicleID: "v1", Category: "fuel", Date: day(9), Amount: money(100)},
		}},
		Worker: fakeWorkers{workers: []worker.Worker{
			{ID: "w1", Name: "Ravi", SalaryType: worker.SalaryTypeDaily, DailyRate: &rate, IsActive: true},
			{ID: "w2", Name: "Suresh", SalaryType: worker.SalaryTypeMonthly, MonthlySalary: &monthly, IsActive: true},
			{ID: "w3", Name: "Former", SalaryType: worker.SalaryTypeDaily, DailyRate: &rate, IsActive: false},
		}},
		Attendance: fakeAttendance{records: []attendance.WorkerAttendance{
			{WorkerID: "w1", Date: day(1), Status: attendance.StatusPresent},
			{WorkerID: "w1", Date: day(2), Status: attendance.StatusHalfDay},
			{WorkerID: "w1", Date: day(3), Status: attendance.StatusPresent},
			{WorkerID: "w2", Date: day(1), Status: attendance.StatusAbsent},
		}},
		Salary: fakeSalaries{payments: []salary.Payment{
			{ID: "s1", WorkerID: "w1", PaymentDate: day(10), PeriodFrom: day(1), PeriodTo: day(10), Amount: money(1000)},
			{ID: "s2", WorkerID: "w2", PaymentDate: day(31), PeriodFrom: day(1), PeriodTo: day(31), Amount: money(30000)},
			{ID: "s3", WorkerID: "w1", PaymentDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Amount: money(999)},
		}},
	}

	svc := NewReportService(repos, file.NewFileService(local), "Acme Earthmovers").(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC) }
	return svc
}

func TestClientStatement_SummaryIgnoresPaging(t *testing.T) {
	svc := newReportService(t)
	ctx := context.Background()

	first, err := svc.ClientStatement(ctx, report.StatementRequest{ClientID: "c1", Page: 1, Limit: 2})
	require.NoError(t, err)
	second, err := svc.ClientStatement(ctx, report.StatementRequest{ClientID: "c1", Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Len(t, first.Jobs.Data, 2)
	assert.Len(t, second.Jobs.Data, 2)
	assert.Equal(t, int64(4), first.Jobs.TotalCount)
	assert.Equal(t, int64(2), first.Payments.TotalCount)
	assert.Empty(t, second.Payments.Data)

	sum := first.Summary
	assert.Equal(t, "2024-03-01", sum.DateFrom)
	assert.Equal(t, "2024-03-31", sum.DateTo)
	assert.True(t, money(1500).Equal(sum.TotalJcb), "jcb %s", sum.TotalJcb)
	assert.True(t, money(1750).Equal(sum.TotalLorry), "lorry %s", sum.TotalLorry)
	assert.True(t, money(3250).Equal(sum.TotalJobsAmount))
	assert.True(t, money(1500).Equal(sum.TotalPayments))
	assert.True(t, money(1750).Equal(sum.OutstandingBalance))

	_, err = svc.ClientStatement(ctx, report.StatementRequest{ClientID: "c404"})
	assert.ErrorIs(t, err, client.ErrClientNotFound)

	_, err = svc.ClientStatement(ctx, report.StatementRequest{ClientID: "c1", DateFrom: "2024-03-10", DateTo: "2024-03-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestVehicleReport(t *testing.T) {
	svc := newReportService(t)

	got, err := svc.VehicleReport(context.Background(), report.VehicleReportRequest{
		VehicleID: "v1", DateFrom: "2024-03-01", DateTo: "2024-03-05", Page: 1, Limit: 10,
	})
	require.NoError(t, err)

	sum := got.Summary
	assert.True(t, money(1500).Equal(sum.TotalJcbRevenue))
	assert.True(t, money(250).Equal(sum.TotalLorryRevenue))
	assert.True(t, money(500).Equal(sum.TotalExpenses))
	assert.True(t, money(1250).Equal(sum.NetIncome))
	require.Len(t, sum.ExpensesByCategory, 2)
	assert.Equal(t, "fuel", sum.ExpensesByCategory[0].Category)
	assert.Len(t, got.Expenses.Data, 2)
	assert.Equal(t, "KA-01-1234", got.Vehicle.RegistrationNo)
}

func TestPaysheet_ActiveWorkersOnly(t *testing.T) {
	svc := newReportService(t)

	sheet, err := svc.Paysheet(context.Background(), report.PaysheetRequest{Month: 3, Year: 2024})
	require.NoError(t, err)

	require.Len(t, sheet.Workers, 2)
	assert.Equal(t, "2024-03-31", sheet.PeriodTo)
	assert.True(t, money(31000).Equal(sheet.GrandTotal.TotalPaid), "paid %s", sheet.GrandTotal.TotalPaid)

	_, err = svc.Paysheet(context.Background(), report.PaysheetRequest{Month: 13, Year: 2024})
	assert.Error(t, err)
}

func TestPayslip(t *testing.T) {
	svc := newReportService(t)

	slip, err := svc.Payslip(context.Background(), report.PayslipRequest{WorkerID: "w1"})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", slip.PeriodFrom)
	assert.True(t, decimal.RequireFromString("2.5").Equal(slip.Attendance.WorkedDays))
	assert.True(t, money(1250).Equal(slip.Salary.CalculatedSalary), "calculated %s", slip.Salary.CalculatedSalary)
	assert.True(t, money(1000).Equal(slip.Salary.TotalPaid))
	assert.True(t, money(250).Equal(slip.Salary.Balance))
	assert.Len(t, slip.Payments, 1)

	_, err = svc.Payslip(context.Background(), report.PayslipRequest{WorkerID: "w404"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestExports(t *testing.T) {
	svc := newReportService(t)
	ctx := context.Background()

	statement, err := svc.ExportClientStatement(ctx, report.StatementRequest{ClientID: "c1"}, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "statement-builder-&-sons-2024-03-01-2024-03-31.pdf", statement.Name)
	assert.True(t, bytes.HasPrefix(statement.Data, []byte("%PDF-")))

	vehicleFile, err := svc.ExportVehicleReport(ctx, report.VehicleReportRequest{VehicleID: "v1"}, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "vehicle-ka-01-1234-2024-03-01-2024-03-31.xlsx", vehicleFile.Name)

	sheet, err := svc.ExportPaysheet(ctx, report.PaysheetRequest{Month: 3, Year: 2024}, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "paysheet-2024-03.xlsx", sheet.Name)

	slip, err := svc.ExportPayslip(ctx, report.PayslipRequest{WorkerID: "w1"}, export.FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(slip.Data, []byte("%PDF-")))

	_, err = svc.ExportPayslip(ctx, report.PayslipRequest{WorkerID: "w1"}, export.FormatJSON)
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}
