package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, worker Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	List(ctx context.Context, filter WorkerFilter) ([]Worker, int64, error)
	// ListActive returns every active worker ordered by name, unpaginated.
	ListActive(ctx context.Context) ([]Worker, error)
	Update(ctx context.Context, worker Worker) error
	Delete(ctx context.Context, id string) error
}
