package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

const jobSelect = `
	SELECT
		j.id, j.type, j.vehicle_id, j.client_id, j.worker_id, j.date, j.rate_type, j.rate_amount,
		j.start_time, j.end_time, j.total_hours, j.trips, j.distance_km, j.days,
		j.from_location, j.to_location, j.material, j.total_amount, j.status, j.notes,
		j.created_at, j.updated_at,
		c.name AS client_name,
		v.registration_no AS vehicle_registration_no,
		w.name AS worker_name
	FROM jobs j
	LEFT JOIN clients c ON j.client_id = c.id
	LEFT JOIN vehicles v ON j.vehicle_id = v.id
	LEFT JOIN workers w ON j.worker_id = w.id
`

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.Type, &j.VehicleID, &j.ClientID, &j.WorkerID, &j.Date, &j.RateType, &j.RateAmount,
		&j.StartTime, &j.EndTime, &j.TotalHours, &j.Trips, &j.DistanceKm, &j.Days,
		&j.FromLocation, &j.ToLocation, &j.Material, &j.TotalAmount, &j.Status, &j.Notes,
		&j.CreatedAt, &j.UpdatedAt,
		&j.ClientName, &j.VehicleRegistrationNo, &j.WorkerName,
	)
	return j, err
}

// jobWhere builds the WHERE clause shared by List and FindAll.
func jobWhere(filter job.JobFilter) (string, []interface{}, int) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.Type != nil && *filter.Type != "" {
		add("j.type = $%d", *filter.Type)
	}
	if filter.ClientID != nil && *filter.ClientID != "" {
		add("j.client_id = $%d", *filter.ClientID)
	}
	if filter.VehicleID != nil && *filter.VehicleID != "" {
		add("j.vehicle_id = $%d", *filter.VehicleID)
	}
	if filter.WorkerID != nil && *filter.WorkerID != "" {
		add("j.worker_id = $%d", *filter.WorkerID)
	}
	if filter.Status != nil && *filter.Status != "" {
		add("j.status = $%d", *filter.Status)
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		add("j.date >= $%d::date", *filter.DateFrom)
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		add("j.date <= $%d::date", *filter.DateTo)
	}

	return strings.Join(conditions, " AND "), args, argIdx
}

func jobOrder(filter job.JobFilter) string {
	validSortColumns := map[string]string{
		"date":         "j.date",
		"total_amount": "j.total_amount",
		"created_at":   "j.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "j.date"
	}

	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}
	return fmt.Sprintf("%s %s, j.created_at %s", sortColumn, sortOrder, sortOrder)
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return jobs, nil
}

// Create implements job.JobRepository.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO jobs (
			type, vehicle_id, client_id, worker_id, date, rate_type, rate_amount,
			start_time, end_time, total_hours, trips, distance_km, days,
			from_location, to_location, material, total_amount, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		j.Type, j.VehicleID, j.ClientID, j.WorkerID, j.Date, j.RateType, j.RateAmount,
		j.StartTime, j.EndTime, j.TotalHours, j.Trips, j.DistanceKm, j.Days,
		j.FromLocation, j.ToLocation, j.Material, j.TotalAmount, j.Status, j.Notes,
	).Scan(&id)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanJob(q.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	return result, nil
}

// List implements job.JobRepository.
func (r *jobRepositoryImpl) List(ctx context.Context, filter job.JobFilter) ([]job.Job, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := jobWhere(filter)

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs j WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		jobSelect, whereClause, jobOrder(filter), argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FindAll implements job.JobRepository.
func (r *jobRepositoryImpl) FindAll(ctx context.Context, filter job.JobFilter) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := jobWhere(filter)
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s", jobSelect, whereClause, jobOrder(filter))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	return collectJobs(rows)
}

// Update implements job.JobRepository.
func (r *jobRepositoryImpl) Update(ctx context.Context, j job.Job) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE jobs
		SET type = $1, vehicle_id = $2, client_id = $3, worker_id = $4, date = $5,
		    rate_type = $6, rate_amount = $7, start_time = $8, end_time = $9,
		    total_hours = $10, trips = $11, distance_km = $12, days = $13,
		    from_location = $14, to_location = $15, material = $16,
		    total_amount = $17, status = $18, notes = $19, updated_at = NOW()
		WHERE id = $20
	`
	commandTag, err := q.Exec(ctx, query,
		j.Type, j.VehicleID, j.ClientID, j.WorkerID, j.Date, j.RateType, j.RateAmount,
		j.StartTime, j.EndTime, j.TotalHours, j.Trips, j.DistanceKm, j.Days,
		j.FromLocation, j.ToLocation, j.Material, j.TotalAmount, j.Status, j.Notes, j.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// HasPayments implements job.JobRepository.
func (r *jobRepositoryImpl) HasPayments(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var linked bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE payable_type = 'job' AND payable_id = $1)`, id,
	).Scan(&linked)
	if err != nil {
		return false, fmt.Errorf("failed to check job payments: %w", err)
	}
	return linked, nil
}

// UpdateStatus implements job.JobRepository.
func (r *jobRepositoryImpl) UpdateStatus(ctx context.Context, id string, status job.Status) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

// Delete implements job.JobRepository.
func (r *jobRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return job.ErrJobInUse
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}
