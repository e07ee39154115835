package salary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/billing"
)

type SalaryPaymentServiceImpl struct {
	salary.SalaryPaymentRepository
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewSalaryPaymentService(salaryRepository salary.SalaryPaymentRepository, workerRepo worker.WorkerRepository, attendanceRepo attendance.AttendanceRepository) salary.SalaryPaymentService {
	return &SalaryPaymentServiceImpl{
		SalaryPaymentRepository: salaryRepository,
		workerRepo:              workerRepo,
		attendanceRepo:          attendanceRepo,
	}
}

// Create implements salary.SalaryPaymentService. Missing worked_days are taken from
// the worker's attendance over the pay period.
func (s *SalaryPaymentServiceImpl) Create(ctx context.Context, req salary.CreatePaymentRequest) (salary.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.PaymentResponse{}, err
	}
	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return salary.PaymentResponse{}, err
	}

	entity := req.ToEntity()
	if req.WorkedDays == nil {
		records, err := s.attendanceRepo.FindByWorkerAndRange(ctx, entity.WorkerID, entity.PeriodFrom, entity.PeriodTo)
		if err != nil {
			return salary.PaymentResponse{}, fmt.Errorf("failed to load attendance: %w", err)
		}
		summary := billing.AggregateAttendance(entity.WorkerID, entity.PeriodFrom, entity.PeriodTo, records)
		entity.WorkedDays = summary.WorkedDays
		slog.Debug("worked days filled from attendance", "worker_id", entity.WorkerID, "worked_days", summary.WorkedDays.String())
	}

	created, err := s.SalaryPaymentRepository.Create(ctx, entity)
	if err != nil {
		return salary.PaymentResponse{}, fmt.Errorf("failed to create salary payment: %w", err)
	}
	return s.Get(ctx, created.ID)
}

// Get implements salary.SalaryPaymentService.
func (s *SalaryPaymentServiceImpl) Get(ctx context.Context, id string) (salary.PaymentResponse, error) {
	p, err := s.SalaryPaymentRepository.GetByID(ctx, id)
	if err != nil {
		return salary.PaymentResponse{}, err
	}
	return salary.NewPaymentResponse(p), nil
}

// List implements salary.SalaryPaymentService.
func (s *SalaryPaymentServiceImpl) List(ctx context.Context, filter salary.PaymentFilter) (salary.ListPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return salary.ListPaymentResponse{}, err
	}

	payments, total, err := s.SalaryPaymentRepository.List(ctx, filter)
	if err != nil {
		return salary.ListPaymentResponse{}, fmt.Errorf("failed to list salary payments: %w", err)
	}

	responses := make([]salary.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, salary.NewPaymentResponse(p))
	}

	return salary.ListPaymentResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements salary.SalaryPaymentService.
func (s *SalaryPaymentServiceImpl) Update(ctx context.Context, req salary.UpdatePaymentRequest) (salary.PaymentResponse, error) {
	existing, err := s.SalaryPaymentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return salary.PaymentResponse{}, err
	}

	if err := req.ApplyTo(&existing); err != nil {
		return salary.PaymentResponse{}, err
	}

	if err := s.SalaryPaymentRepository.Update(ctx, existing); err != nil {
		return salary.PaymentResponse{}, err
	}
	return s.Get(ctx, req.ID)
}

// Delete implements salary.SalaryPaymentService.
func (s *SalaryPaymentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.SalaryPaymentRepository.Delete(ctx, id)
}
