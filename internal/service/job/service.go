package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/billing"
)

type JobServiceImpl struct {
	job.JobRepository
	clientRepo  client.ClientRepository
	vehicleRepo vehicle.VehicleRepository
	workerRepo  worker.WorkerRepository
}

func NewJobService(
	jobRepository job.JobRepository,
	clientRepo client.ClientRepository,
	vehicleRepo vehicle.VehicleRepository,
	workerRepo worker.WorkerRepository,
) job.JobService {
	return &JobServiceImpl{
		JobRepository: jobRepository,
		clientRepo:    clientRepo,
		vehicleRepo:   vehicleRepo,
		workerRepo:    workerRepo,
	}
}

// Create implements job.JobService.
func (s *JobServiceImpl) Create(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	entity := job.Job{
		Type:         job.JobType(req.Type),
		VehicleID:    req.VehicleID,
		ClientID:     req.ClientID,
		WorkerID:     req.WorkerID,
		Date:         date,
		RateType:     job.RateType(req.RateType),
		RateAmount:   req.RateAmount,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		TotalHours:   req.TotalHours,
		Trips:        req.Trips,
		DistanceKm:   req.DistanceKm,
		Days:         req.Days,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Material:     req.Material,
		Status:       job.StatusPending,
		Notes:        req.Notes,
	}
	if req.TotalAmount != nil {
		entity.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		entity.Status = job.Status(*req.Status)
	}

	if err := s.checkReferences(ctx, entity); err != nil {
		return job.JobResponse{}, err
	}
	s.recompute(&entity)

	created, err := s.JobRepository.Create(ctx, entity)
	if err != nil {
		return job.JobResponse{}, fmt.Errorf("failed to create job: %w", err)
	}

	return s.Get(ctx, created.ID)
}

// Get implements job.JobService.
func (s *JobServiceImpl) Get(ctx context.Context, id string) (job.JobResponse, error) {
	j, err := s.JobRepository.GetByID(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	return job.NewJobResponse(j), nil
}

// List implements job.JobService.
func (s *JobServiceImpl) List(ctx context.Context, filter job.JobFilter) (job.ListJobResponse, error) {
	if err := filter.Validate(); err != nil {
		return job.ListJobResponse{}, err
	}

	jobs, total, err := s.JobRepository.List(ctx, filter)
	if err != nil {
		return job.ListJobResponse{}, fmt.Errorf("failed to list jobs: %w", err)
	}

	return job.ListJobResponse{
		Data:       job.NewJobResponses(jobs),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements job.JobService. The total is recalculated from the merged job
// on every update.
func (s *JobServiceImpl) Update(ctx context.Context, req job.UpdateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	existing, err := s.JobRepository.GetByID(ctx, req.ID)
	if err != nil {
		return job.JobResponse{}, err
	}

	// Linked payments were checked against the job's client when recorded.
	if req.ClientID != nil && *req.ClientID != existing.ClientID {
		linked, err := s.JobRepository.HasPayments(ctx, existing.ID)
		if err != nil {
			return job.JobResponse{}, err
		}
		if linked {
			return job.JobResponse{}, job.ErrJobClientLocked
		}
	}

	req.ApplyTo(&existing)
	// New clock readings without explicit hours mean the hours must be derived again.
	if (req.StartTime != nil || req.EndTime != nil) && req.TotalHours == nil {
		existing.TotalHours = nil
	}

	if err := s.checkReferences(ctx, existing); err != nil {
		return job.JobResponse{}, err
	}
	s.recompute(&existing)

	if err := s.JobRepository.Update(ctx, existing); err != nil {
		return job.JobResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

// UpdateStatus implements job.JobService.
func (s *JobServiceImpl) UpdateStatus(ctx context.Context, req job.UpdateJobStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.JobRepository.UpdateStatus(ctx, req.ID, job.Status(req.Status))
}

// Delete implements job.JobService.
func (s *JobServiceImpl) Delete(ctx context.Context, id string) error {
	return s.JobRepository.Delete(ctx, id)
}

// checkReferences makes sure client, vehicle and worker exist and that the vehicle
// kind matches the job kind.
func (s *JobServiceImpl) checkReferences(ctx context.Context, j job.Job) error {
	if _, err := s.clientRepo.GetByID(ctx, j.ClientID); err != nil {
		return err
	}

	v, err := s.vehicleRepo.GetByID(ctx, j.VehicleID)
	if err != nil {
		return err
	}
	if string(v.Type) != string(j.Type) {
		return fmt.Errorf("%w: vehicle %s is a %s, job is %s", job.ErrVehicleTypeMismatch, v.RegistrationNo, v.Type, j.Type)
	}

	if j.WorkerID != nil {
		if _, err := s.workerRepo.GetByID(ctx, *j.WorkerID); err != nil {
			return err
		}
	}
	return nil
}

// recompute fills derived hours and prices the job right before it is written.
func (s *JobServiceImpl) recompute(j *job.Job) {
	if j.Type == job.JobTypeJCB && j.TotalHours == nil && j.StartTime != nil && j.EndTime != nil {
		if hours, ok := billing.HoursBetween(*j.StartTime, *j.EndTime); ok {
			j.TotalHours = &hours
		}
	}

	total, basis := billing.ComputeJobTotal(j.Type, j.RateType, j.RateAmount, j.Quantities(), j.TotalAmount)
	if basis == billing.BasisUnrecognized {
		slog.Warn("job rate basis not recognised, total left unchanged",
			"job_id", j.ID,
			"type", j.Type,
			"rate_type", j.RateType,
			"total_amount", j.TotalAmount.StringFixed(2),
		)
	}
	j.TotalAmount = total
}
