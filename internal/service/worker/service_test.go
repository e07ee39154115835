package worker

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	w.ID = uuid.NewString()
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) List(_ context.Context, _ worker.WorkerFilter) ([]worker.Worker, int64, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (f *fakeWorkerRepo) ListActive(_ context.Context) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, w worker.Worker) error {
	if _, ok := f.workers[w.ID]; !ok {
		return worker.ErrWorkerNotFound
	}
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkerRepo) Delete(_ context.Context, id string) error {
	delete(f.workers, id)
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateWorker(t *testing.T) {
	repo := &fakeWorkerRepo{workers: map[string]worker.Worker{}}
	svc := NewWorkerService(repo)
	joined := "2024-01-15"

	created, err := svc.Create(context.Background(), worker.CreateWorkerRequest{
		Name:          "Mahesh",
		SalaryType:    "daily",
		DailyRate:     dec("800"),
		MonthlySalary: dec("20000"),
		JoinedAt:      &joined,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "2024-01-15", *created.JoinedAt)
	assert.Nil(t, created.MonthlySalary, "monthly salary is dropped for daily workers")
}

func TestCreateWorker_SalaryValidation(t *testing.T) {
	svc := NewWorkerService(&fakeWorkerRepo{workers: map[string]worker.Worker{}})

	_, err := svc.Create(context.Background(), worker.CreateWorkerRequest{Name: "Suresh", SalaryType: "monthly"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly_salary")

	_, err = svc.Create(context.Background(), worker.CreateWorkerRequest{Name: "Suresh", SalaryType: "weekly"})
	assert.Error(t, err)
}

func TestUpdateWorker_SwitchSalaryType(t *testing.T) {
	repo := &fakeWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", Name: "Anil", SalaryType: worker.SalaryTypeDaily, DailyRate: dec("700"), IsActive: true},
	}}
	svc := NewWorkerService(repo)
	monthly := "monthly"

	// Switching without a monthly salary is rejected.
	_, err := svc.Update(context.Background(), worker.UpdateWorkerRequest{ID: "w1", SalaryType: &monthly})
	assert.Error(t, err)

	updated, err := svc.Update(context.Background(), worker.UpdateWorkerRequest{ID: "w1", SalaryType: &monthly, MonthlySalary: dec("21000")})
	require.NoError(t, err)
	assert.Equal(t, "monthly", updated.SalaryType)
	assert.Nil(t, updated.DailyRate)
	assert.True(t, decimal.RequireFromString("21000").Equal(*updated.MonthlySalary))

	_, err = svc.Update(context.Background(), worker.UpdateWorkerRequest{ID: "missing"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}
