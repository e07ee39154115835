package salary

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalaryRepo struct {
	payments map[string]salary.Payment
}

func (f *fakeSalaryRepo) Create(_ context.Context, p salary.Payment) (salary.Payment, error) {
	p.ID = uuid.NewString()
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakeSalaryRepo) GetByID(_ context.Context, id string) (salary.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return salary.Payment{}, salary.ErrSalaryPaymentNotFound
	}
	return p, nil
}

func (f *fakeSalaryRepo) List(_ context.Context, _ salary.PaymentFilter) ([]salary.Payment, int64, error) {
	var out []salary.Payment
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSalaryRepo) FindByPaymentDate(_ context.Context, _ *string, _, _ time.Time) ([]salary.Payment, error) {
	return nil, nil
}

func (f *fakeSalaryRepo) Update(_ context.Context, p salary.Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakeSalaryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.payments[id]; !ok {
		return salary.ErrSalaryPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

type stubWorkers struct{ worker.WorkerRepository }

func (stubWorkers) GetByID(_ context.Context, id string) (worker.Worker, error) {
	if id != "w1" {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return worker.Worker{ID: id}, nil
}

type stubAttendance struct {
	attendance.AttendanceRepository
	records []attendance.WorkerAttendance
}

func (s stubAttendance) FindByWorkerAndRange(_ context.Context, workerID string, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	var out []attendance.WorkerAttendance
	for _, r := range s.records {
		if r.WorkerID == workerID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func newSalaryService() (salary.SalaryPaymentService, *fakeSalaryRepo) {
	repo := &fakeSalaryRepo{payments: map[string]salary.Payment{}}
	att := stubAttendance{records: []attendance.WorkerAttendance{
		{WorkerID: "w1", Date: day(1), Status: attendance.StatusPresent},
		{WorkerID: "w1", Date: day(2), Status: attendance.StatusPresent},
		{WorkerID: "w1", Date: day(3), Status: attendance.StatusHalfDay},
		{WorkerID: "w1", Date: day(4), Status: attendance.StatusAbsent},
		{WorkerID: "w1", Date: day(20), Status: attendance.StatusPresent},
	}}
	return NewSalaryPaymentService(repo, stubWorkers{}, att), repo
}

func TestCreate_FillsWorkedDaysFromAttendance(t *testing.T) {
	svc, _ := newSalaryService()

	got, err := svc.Create(context.Background(), salary.CreatePaymentRequest{
		WorkerID:    "w1",
		Amount:      decimal.NewFromInt(1500),
		PaymentDate: "2024-03-16",
		PeriodFrom:  "2024-03-01",
		PeriodTo:    "2024-03-15",
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.5").Equal(got.WorkedDays), "got %s", got.WorkedDays)
}

func TestCreate_KeepsExplicitWorkedDays(t *testing.T) {
	svc, _ := newSalaryService()
	explicit := decimal.NewFromInt(10)

	got, err := svc.Create(context.Background(), salary.CreatePaymentRequest{
		WorkerID:    "w1",
		Amount:      decimal.NewFromInt(1500),
		PaymentDate: "2024-03-16",
		PeriodFrom:  "2024-03-01",
		PeriodTo:    "2024-03-15",
		WorkedDays:  &explicit,
	})
	require.NoError(t, err)
	assert.True(t, explicit.Equal(got.WorkedDays))
}

func TestCreate_Rejections(t *testing.T) {
	svc, repo := newSalaryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, salary.CreatePaymentRequest{
		WorkerID:    "w404",
		Amount:      decimal.NewFromInt(100),
		PaymentDate: "2024-03-16",
		PeriodFrom:  "2024-03-01",
		PeriodTo:    "2024-03-15",
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	_, err = svc.Create(ctx, salary.CreatePaymentRequest{
		WorkerID:    "w1",
		Amount:      decimal.Zero,
		PaymentDate: "2024-03-16",
		PeriodFrom:  "2024-03-15",
		PeriodTo:    "2024-03-01",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.payments)
}

func TestUpdate_RejectsInvertedPeriod(t *testing.T) {
	svc, _ := newSalaryService()
	ctx := context.Background()

	created, err := svc.Create(ctx, salary.CreatePaymentRequest{
		WorkerID:    "w1",
		Amount:      decimal.NewFromInt(1500),
		PaymentDate: "2024-03-16",
		PeriodFrom:  "2024-03-01",
		PeriodTo:    "2024-03-15",
	})
	require.NoError(t, err)

	to := "2024-02-01"
	_, err = svc.Update(ctx, salary.UpdatePaymentRequest{ID: created.ID, PeriodTo: &to})
	assert.Error(t, err)

	amount := decimal.NewFromInt(1800)
	updated, err := svc.Update(ctx, salary.UpdatePaymentRequest{ID: created.ID, Amount: &amount})
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
}
