package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `id, name, phone, role, salary_type, daily_rate, monthly_salary, is_active, joined_at, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Phone,
		&w.Role,
		&w.SalaryType,
		&w.DailyRate,
		&w.MonthlySalary,
		&w.IsActive,
		&w.JoinedAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

func collectWorkers(rows pgx.Rows) ([]worker.Worker, error) {
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return workers, nil
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (name, phone, role, salary_type, daily_rate, monthly_salary, is_active, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + workerColumns

	result, err := scanWorker(q.QueryRow(ctx, query,
		w.Name, w.Phone, w.Role, w.SalaryType, w.DailyRate, w.MonthlySalary, w.IsActive, w.JoinedAt,
	))
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return result, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanWorker(q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return result, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.SalaryType != nil && *filter.SalaryType != "" {
		conditions = append(conditions, fmt.Sprintf("salary_type = $%d", argIdx))
		args = append(args, *filter.SalaryType)
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d OR role ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM workers WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM workers
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, workerColumns, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	workers, err := collectWorkers(rows)
	if err != nil {
		return nil, 0, err
	}
	return workers, total, nil
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListActive(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+workerColumns+` FROM workers WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	return collectWorkers(rows)
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET name = $1, phone = $2, role = $3, salary_type = $4, daily_rate = $5,
		    monthly_salary = $6, is_active = $7, joined_at = $8, updated_at = NOW()
		WHERE id = $9
	`
	commandTag, err := q.Exec(ctx, query,
		w.Name, w.Phone, w.Role, w.SalaryType, w.DailyRate, w.MonthlySalary, w.IsActive, w.JoinedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return worker.ErrWorkerInUse
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}
