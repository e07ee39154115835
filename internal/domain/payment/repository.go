package payment

import "context"

type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	// FindAll returns every payment matching filter, ignoring Page and Limit.
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)
	Update(ctx context.Context, payment Payment) error
	Delete(ctx context.Context, id string) error
}
