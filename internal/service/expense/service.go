package expense

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

type ExpenseServiceImpl struct {
	expense.ExpenseRepository
	vehicleRepo vehicle.VehicleRepository
	fileService file.FileService
}

func NewExpenseService(expenseRepository expense.ExpenseRepository, vehicleRepo vehicle.VehicleRepository, fileService file.FileService) expense.ExpenseService {
	return &ExpenseServiceImpl{
		ExpenseRepository: expenseRepository,
		vehicleRepo:       vehicleRepo,
		fileService:       fileService,
	}
}

func (s *ExpenseServiceImpl) toResponse(e expense.VehicleExpense) expense.ExpenseResponse {
	return expense.NewExpenseResponse(e, s.fileService.URL)
}

// Create implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return expense.ExpenseResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	entity := expense.VehicleExpense{
		VehicleID:   req.VehicleID,
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	}
	if req.DateTo != nil && *req.DateTo != "" {
		dateTo, _ := validator.IsValidDate(*req.DateTo)
		entity.DateTo = &dateTo
	}

	created, err := s.ExpenseRepository.Create(ctx, entity)
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return s.Get(ctx, created.ID)
}

// Get implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Get(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	e, err := s.ExpenseRepository.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return s.toResponse(e), nil
}

// List implements expense.ExpenseService.
func (s *ExpenseServiceImpl) List(ctx context.Context, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListExpenseResponse{}, err
	}

	expenses, total, err := s.ExpenseRepository.List(ctx, filter)
	if err != nil {
		return expense.ListExpenseResponse{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, s.toResponse(e))
	}

	return expense.ListExpenseResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	existing, err := s.ExpenseRepository.GetByID(ctx, req.ID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	if err := req.ApplyTo(&existing); err != nil {
		return expense.ExpenseResponse{}, err
	}
	existing.Category = strings.TrimSpace(existing.Category)
	if req.VehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(ctx, existing.VehicleID); err != nil {
			return expense.ExpenseResponse{}, err
		}
	}

	if err := s.ExpenseRepository.Update(ctx, existing); err != nil {
		return expense.ExpenseResponse{}, err
	}
	return s.Get(ctx, req.ID)
}

// Delete implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.ExpenseRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ExpenseRepository.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ReceiptPath != nil {
		s.removeReceipt(ctx, *existing.ReceiptPath)
	}
	return nil
}

// UploadReceipt implements expense.ExpenseService. A previous receipt is removed once
// the new one is stored.
func (s *ExpenseServiceImpl) UploadReceipt(ctx context.Context, id string, f multipart.File, header *multipart.FileHeader) (expense.ExpenseResponse, error) {
	if f == nil || header == nil {
		return expense.ExpenseResponse{}, expense.ErrReceiptRequired
	}

	existing, err := s.ExpenseRepository.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	key, err := s.fileService.UploadReceipt(ctx, id, f, header.Filename)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	if err := s.ExpenseRepository.UpdateReceiptPath(ctx, id, key); err != nil {
		s.removeReceipt(ctx, key)
		return expense.ExpenseResponse{}, fmt.Errorf("failed to save receipt path: %w", err)
	}
	if existing.ReceiptPath != nil && *existing.ReceiptPath != key {
		s.removeReceipt(ctx, *existing.ReceiptPath)
	}

	slog.Info("expense receipt uploaded", "expense_id", id, "key", key, "size", header.Size)
	return s.Get(ctx, id)
}

func (s *ExpenseServiceImpl) removeReceipt(ctx context.Context, key string) {
	if err := s.fileService.DeleteFile(ctx, key); err != nil {
		slog.Warn("failed to delete receipt file", "key", key, "error", err)
	}
}
