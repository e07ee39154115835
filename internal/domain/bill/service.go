package bill

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
)

type BillService interface {
	Create(ctx context.Context, req BillRequest) (BillResponse, error)
	Get(ctx context.Context, id string) (BillResponse, error)
	List(ctx context.Context, filter BillFilter) (ListBillResponse, error)
	Update(ctx context.Context, id string, req BillRequest) (BillResponse, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string, format export.Format) (export.File, error)
	// Prefill proposes bill items from the vehicle's jcb jobs for the month.
	Prefill(ctx context.Context, req PrefillRequest) (PrefillResponse, error)
}
