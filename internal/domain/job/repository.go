package job

import "context"

type JobRepository interface {
	Create(ctx context.Context, job Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	// List returns one page of jobs matching filter plus the total match count.
	List(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	// FindAll returns every job matching filter, ignoring Page and Limit.
	FindAll(ctx context.Context, filter JobFilter) ([]Job, error)
	Update(ctx context.Context, job Job) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	// HasPayments reports whether any payment is linked to the job.
	HasPayments(ctx context.Context, id string) (bool, error)
}
