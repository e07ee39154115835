package bill

import "context"

type BillRepository interface {
	// Create stores the bill header and its items. It must run inside a transaction.
	Create(ctx context.Context, bill MonthlyVehicleBill) (MonthlyVehicleBill, error)
	GetByID(ctx context.Context, id string) (MonthlyVehicleBill, error)
	List(ctx context.Context, filter BillFilter) ([]MonthlyVehicleBill, int64, error)
	// Update rewrites the header and replaces all items.
	Update(ctx context.Context, bill MonthlyVehicleBill) error
	Delete(ctx context.Context, id string) error
}
