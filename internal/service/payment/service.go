package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
)

type PaymentServiceImpl struct {
	payment.PaymentRepository
	clientRepo client.ClientRepository
	jobRepo    job.JobRepository
}

func NewPaymentService(paymentRepository payment.PaymentRepository, clientRepo client.ClientRepository, jobRepo job.JobRepository) payment.PaymentService {
	return &PaymentServiceImpl{
		PaymentRepository: paymentRepository,
		clientRepo:        clientRepo,
		jobRepo:           jobRepo,
	}
}

// Create implements payment.PaymentService.
func (s *PaymentServiceImpl) Create(ctx context.Context, req payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	entity := req.ToEntity()
	if err := s.checkReferences(ctx, entity); err != nil {
		return payment.PaymentResponse{}, err
	}

	created, err := s.PaymentRepository.Create(ctx, entity)
	if err != nil {
		return payment.PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return s.Get(ctx, created.ID)
}

// Get implements payment.PaymentService.
func (s *PaymentServiceImpl) Get(ctx context.Context, id string) (payment.PaymentResponse, error) {
	p, err := s.PaymentRepository.GetByID(ctx, id)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	return payment.NewPaymentResponse(p), nil
}

// List implements payment.PaymentService.
func (s *PaymentServiceImpl) List(ctx context.Context, filter payment.PaymentFilter) (payment.ListPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListPaymentResponse{}, err
	}

	payments, total, err := s.PaymentRepository.List(ctx, filter)
	if err != nil {
		return payment.ListPaymentResponse{}, fmt.Errorf("failed to list payments: %w", err)
	}

	responses := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payment.NewPaymentResponse(p))
	}

	return payment.ListPaymentResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements payment.PaymentService.
func (s *PaymentServiceImpl) Update(ctx context.Context, req payment.UpdatePaymentRequest) (payment.PaymentResponse, error) {
	existing, err := s.PaymentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	if err := req.ApplyTo(&existing); err != nil {
		return payment.PaymentResponse{}, err
	}
	if err := s.checkReferences(ctx, existing); err != nil {
		return payment.PaymentResponse{}, err
	}

	if err := s.PaymentRepository.Update(ctx, existing); err != nil {
		return payment.PaymentResponse{}, err
	}
	return s.Get(ctx, req.ID)
}

// Delete implements payment.PaymentService.
func (s *PaymentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.PaymentRepository.Delete(ctx, id)
}

// checkReferences verifies the client and, when linked, that the job exists and was
// done for the same client.
func (s *PaymentServiceImpl) checkReferences(ctx context.Context, p payment.Payment) error {
	if _, err := s.clientRepo.GetByID(ctx, p.ClientID); err != nil {
		return err
	}
	if p.Payable == nil {
		return nil
	}

	linked, err := s.jobRepo.GetByID(ctx, p.Payable.ID)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return payment.ErrPayableNotFound
		}
		return fmt.Errorf("failed to load linked job: %w", err)
	}
	if linked.ClientID != p.ClientID {
		return payment.ErrPayableWrongOwner
	}
	return nil
}
