package salary

import "context"

type SalaryPaymentService interface {
	Create(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	Get(ctx context.Context, id string) (PaymentResponse, error)
	List(ctx context.Context, filter PaymentFilter) (ListPaymentResponse, error)
	Update(ctx context.Context, req UpdatePaymentRequest) (PaymentResponse, error)
	Delete(ctx context.Context, id string) error
}
