package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new record and fails with ErrAttendanceAlreadyRecorded when the
	// worker already has one for that date.
	Create(ctx context.Context, record WorkerAttendance) (WorkerAttendance, error)
	// Upsert inserts or replaces the record for (worker_id, date).
	Upsert(ctx context.Context, record WorkerAttendance) (WorkerAttendance, error)
	GetByID(ctx context.Context, id string) (WorkerAttendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]WorkerAttendance, int64, error)
	// FindByWorkerAndRange returns the worker's records with from <= date <= to.
	FindByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time) ([]WorkerAttendance, error)
	// FindByRange returns every worker's records with from <= date <= to.
	FindByRange(ctx context.Context, from, to time.Time) ([]WorkerAttendance, error)
	Delete(ctx context.Context, id string) error
}
