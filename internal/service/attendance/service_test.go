package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.WorkerAttendance
}

func (f *fakeAttendanceRepo) find(workerID string, date time.Time) (attendance.WorkerAttendance, bool) {
	for _, r := range f.records {
		if r.WorkerID == workerID && r.Date.Equal(date) {
			return r, true
		}
	}
	return attendance.WorkerAttendance{}, false
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.WorkerAttendance) (attendance.WorkerAttendance, error) {
	if _, exists := f.find(record.WorkerID, record.Date); exists {
		return attendance.WorkerAttendance{}, attendance.ErrAttendanceAlreadyRecorded
	}
	record.ID = uuid.NewString()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.WorkerAttendance) (attendance.WorkerAttendance, error) {
	if existing, ok := f.find(record.WorkerID, record.Date); ok {
		record.ID = existing.ID
	} else {
		record.ID = uuid.NewString()
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.WorkerAttendance, error) {
	r, ok := f.records[id]
	if !ok {
		return attendance.WorkerAttendance{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.WorkerAttendance, int64, error) {
	var out []attendance.WorkerAttendance
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) FindByWorkerAndRange(_ context.Context, workerID string, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	var out []attendance.WorkerAttendance
	for _, r := range f.records {
		if r.WorkerID == workerID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByRange(_ context.Context, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	var out []attendance.WorkerAttendance
	for _, r := range f.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

// rollbackTx restores the repository when fn fails, like a database rollback.
type rollbackTx struct {
	repo *fakeAttendanceRepo
}

func (r rollbackTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	snapshot := make(map[string]attendance.WorkerAttendance, len(r.repo.records))
	for k, v := range r.repo.records {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		r.repo.records = snapshot
		return err
	}
	return nil
}

type stubWorkers struct{ worker.WorkerRepository }

func (stubWorkers) GetByID(_ context.Context, id string) (worker.Worker, error) {
	if id != "w1" && id != "w2" {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return worker.Worker{ID: id}, nil
}

func newAttendanceService(now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{records: map[string]attendance.WorkerAttendance{}}
	svc := NewAttendanceService(rollbackTx{repo: repo}, repo, stubWorkers{}).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestMark_UpsertsPerWorkerAndDate(t *testing.T) {
	svc, repo := newAttendanceService(time.Now())
	ctx := context.Background()

	first, err := svc.Mark(ctx, attendance.MarkAttendanceRequest{WorkerID: "w1", Date: "2024-03-04", Status: "present"})
	require.NoError(t, err)
	second, err := svc.Mark(ctx, attendance.MarkAttendanceRequest{WorkerID: "w1", Date: "2024-03-04", Status: "half_day"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, "half_day", second.Status)

	_, err = svc.Mark(ctx, attendance.MarkAttendanceRequest{WorkerID: "w404", Date: "2024-03-04", Status: "present"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestCreate_RejectsDuplicate(t *testing.T) {
	svc, _ := newAttendanceService(time.Now())
	ctx := context.Background()

	_, err := svc.Create(ctx, attendance.MarkAttendanceRequest{WorkerID: "w1", Date: "2024-03-04", Status: "present"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, attendance.MarkAttendanceRequest{WorkerID: "w1", Date: "2024-03-04", Status: "absent"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyRecorded)
}

func TestBulkMark_AllOrNothing(t *testing.T) {
	svc, repo := newAttendanceService(time.Now())
	ctx := context.Background()

	saved, err := svc.BulkMark(ctx, attendance.BulkMarkAttendanceRequest{
		Date: "2024-03-05",
		Entries: []attendance.BulkMarkEntry{
			{WorkerID: "w1", Status: "present"},
			{WorkerID: "w2", Status: "absent"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Len(t, repo.records, 2)

	_, err = svc.BulkMark(ctx, attendance.BulkMarkAttendanceRequest{
		Date: "2024-03-06",
		Entries: []attendance.BulkMarkEntry{
			{WorkerID: "w1", Status: "present"},
			{WorkerID: "w404", Status: "present"},
		},
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	assert.Len(t, repo.records, 2, "the first entry must be rolled back")

	_, err = svc.BulkMark(ctx, attendance.BulkMarkAttendanceRequest{
		Date:    "2024-03-06",
		Entries: []attendance.BulkMarkEntry{{WorkerID: "w1", Status: "present"}, {WorkerID: "w1", Status: "absent"}},
	})
	assert.Error(t, err)
}

func TestSummary_DefaultsToCurrentMonth(t *testing.T) {
	svc, _ := newAttendanceService(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, m := range []attendance.MarkAttendanceRequest{
		{WorkerID: "w1", Date: "2024-02-28", Status: "present"},
		{WorkerID: "w1", Date: "2024-03-01", Status: "present"},
		{WorkerID: "w1", Date: "2024-03-02", Status: "half_day"},
		{WorkerID: "w1", Date: "2024-03-03", Status: "absent"},
		{WorkerID: "w1", Date: "2024-03-11", Status: "present"},
		{WorkerID: "w2", Date: "2024-03-01", Status: "present"},
	} {
		_, err := svc.Mark(ctx, m)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, attendance.SummaryRequest{WorkerID: "w1"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", summary.PeriodFrom)
	assert.Equal(t, "2024-03-10", summary.PeriodTo)
	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 1, summary.HalfDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.True(t, decimal.RequireFromString("1.5").Equal(summary.WorkedDays))

	_, err = svc.Summary(ctx, attendance.SummaryRequest{WorkerID: "w1", From: "2024-03-10", To: "2024-03-01"})
	assert.Error(t, err)
}
