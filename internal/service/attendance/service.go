package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/billing"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	workerRepo worker.WorkerRepository
	now        func() time.Time
}

func NewAttendanceService(tx database.Transactor, attendanceRepository attendance.AttendanceRepository, workerRepo worker.WorkerRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		workerRepo:           workerRepo,
		now:                  time.Now,
	}
}

// Create implements attendance.AttendanceService. It refuses to overwrite an existing mark.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.AttendanceRepository.Create(ctx, req.ToEntity())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(created), nil
}

// Mark implements attendance.AttendanceService. The mark for (worker, date) is replaced.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := s.AttendanceRepository.Upsert(ctx, req.ToEntity())
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(saved), nil
}

// BulkMark implements attendance.AttendanceService. Either every entry is stored or none.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, _ := validator.IsValidDate(req.Date)

	responses := make([]attendance.AttendanceResponse, 0, len(req.Entries))
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, entry := range req.Entries {
			if _, err := s.workerRepo.GetByID(txCtx, entry.WorkerID); err != nil {
				return fmt.Errorf("worker %s: %w", entry.WorkerID, err)
			}
			saved, err := s.AttendanceRepository.Upsert(txCtx, attendance.WorkerAttendance{
				WorkerID: entry.WorkerID,
				Date:     date,
				Status:   attendance.Status(entry.Status),
				Notes:    entry.Notes,
			})
			if err != nil {
				return fmt.Errorf("failed to mark attendance for worker %s: %w", entry.WorkerID, err)
			}
			responses = append(responses, attendance.NewAttendanceResponse(saved))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("attendance marked in bulk", "date", req.Date, "count", len(responses))
	return responses, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.AttendanceRepository.Delete(ctx, id)
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, req attendance.SummaryRequest) (attendance.Summary, error) {
	from, to, err := req.Resolve(s.now())
	if err != nil {
		return attendance.Summary{}, err
	}
	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return attendance.Summary{}, err
	}

	records, err := s.AttendanceRepository.FindByWorkerAndRange(ctx, req.WorkerID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	return billing.AggregateAttendance(req.WorkerID, from, to, records), nil
}
