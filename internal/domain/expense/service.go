package expense

import (
	"context"
	"mime/multipart"
)

type ExpenseService interface {
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Get(ctx context.Context, id string) (ExpenseResponse, error)
	List(ctx context.Context, filter ExpenseFilter) (ListExpenseResponse, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	UploadReceipt(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (ExpenseResponse, error)
}
