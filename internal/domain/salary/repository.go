package salary

import (
	"context"
	"time"
)

type SalaryPaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	// FindByPaymentDate returns payments with from <= payment_date <= to, optionally
	// narrowed to one worker.
	FindByPaymentDate(ctx context.Context, workerID *string, from, to time.Time) ([]Payment, error)
	Update(ctx context.Context, payment Payment) error
	Delete(ctx context.Context, id string) error
}
