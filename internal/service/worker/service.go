package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
}

func NewWorkerService(workerRepository worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{WorkerRepository: workerRepository}
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	entity := worker.Worker{
		Name:       strings.TrimSpace(req.Name),
		Phone:      req.Phone,
		Role:       req.Role,
		SalaryType: worker.SalaryType(req.SalaryType),
		IsActive:   true,
	}
	// Only the rate that matches the salary type is kept.
	switch entity.SalaryType {
	case worker.SalaryTypeDaily:
		entity.DailyRate = req.DailyRate
	case worker.SalaryTypeMonthly:
		entity.MonthlySalary = req.MonthlySalary
	}
	if req.IsActive != nil {
		entity.IsActive = *req.IsActive
	}
	if req.JoinedAt != nil {
		joined, _ := validator.IsValidDate(*req.JoinedAt)
		entity.JoinedAt = &joined
	}

	created, err := s.WorkerRepository.Create(ctx, entity)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return worker.NewWorkerResponse(created), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.NewWorkerResponse(w), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, filter worker.WorkerFilter) (worker.ListWorkerResponse, error) {
	workers, total, err := s.WorkerRepository.List(ctx, filter)
	if err != nil {
		return worker.ListWorkerResponse{}, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.NewWorkerResponse(w))
	}

	return worker.ListWorkerResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	existing, err := s.WorkerRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := req.ApplyTo(&existing); err != nil {
		return worker.WorkerResponse{}, err
	}
	switch existing.SalaryType {
	case worker.SalaryTypeDaily:
		existing.MonthlySalary = nil
	case worker.SalaryTypeMonthly:
		existing.DailyRate = nil
	}

	if err := s.WorkerRepository.Update(ctx, existing); err != nil {
		return worker.WorkerResponse{}, err
	}
	return s.Get(ctx, req.ID)
}

// Delete implements worker.WorkerService.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.WorkerRepository.Delete(ctx, id)
}
