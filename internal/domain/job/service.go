package job

import "context"

type JobService interface {
	Create(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	Get(ctx context.Context, id string) (JobResponse, error)
	List(ctx context.Context, filter JobFilter) (ListJobResponse, error)
	Update(ctx context.Context, req UpdateJobRequest) (JobResponse, error)
	UpdateStatus(ctx context.Context, req UpdateJobStatusRequest) error
	Delete(ctx context.Context, id string) error
}
