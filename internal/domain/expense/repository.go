package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, expense VehicleExpense) (VehicleExpense, error)
	GetByID(ctx context.Context, id string) (VehicleExpense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]VehicleExpense, int64, error)
	// FindAll returns every expense matching filter, ignoring Page and Limit.
	FindAll(ctx context.Context, filter ExpenseFilter) ([]VehicleExpense, error)
	Update(ctx context.Context, expense VehicleExpense) error
	UpdateReceiptPath(ctx context.Context, id string, path string) error
	Delete(ctx context.Context, id string) error
}
