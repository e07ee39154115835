package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryPaymentRepositoryImpl struct {
	db *database.DB
}

func NewSalaryPaymentRepository(db *database.DB) salary.SalaryPaymentRepository {
	return &salaryPaymentRepositoryImpl{db: db}
}

const salarySelect = `
	SELECT s.id, s.worker_id, s.amount, s.payment_date, s.period_from, s.period_to,
	       s.worked_days, s.notes, s.created_at, s.updated_at,
	       w.name AS worker_name
	FROM salary_payments s
	LEFT JOIN workers w ON s.worker_id = w.id
`

func scanSalaryPayment(row pgx.Row) (salary.Payment, error) {
	var p salary.Payment
	err := row.Scan(
		&p.ID, &p.WorkerID, &p.Amount, &p.PaymentDate, &p.PeriodFrom, &p.PeriodTo,
		&p.WorkedDays, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&p.WorkerName,
	)
	return p, err
}

func collectSalaryPayments(rows pgx.Rows) ([]salary.Payment, error) {
	defer rows.Close()

	var payments []salary.Payment
	for rows.Next() {
		p, err := scanSalaryPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, nil
}

// Create implements salary.SalaryPaymentRepository.
func (r *salaryPaymentRepositoryImpl) Create(ctx context.Context, p salary.Payment) (salary.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_payments (worker_id, amount, payment_date, period_from, period_to, worked_days, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		p.WorkerID, p.Amount, p.PaymentDate, p.PeriodFrom, p.PeriodTo, p.WorkedDays, p.Notes,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return salary.Payment{}, worker.ErrWorkerNotFound
		}
		return salary.Payment{}, fmt.Errorf("failed to create salary payment: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements salary.SalaryPaymentRepository.
func (r *salaryPaymentRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Payment, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanSalaryPayment(q.QueryRow(ctx, salarySelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Payment{}, salary.ErrSalaryPaymentNotFound
		}
		return salary.Payment{}, fmt.Errorf("failed to get salary payment: %w", err)
	}
	return result, nil
}

// List implements salary.SalaryPaymentRepository.
func (r *salaryPaymentRepositoryImpl) List(ctx context.Context, filter salary.PaymentFilter) ([]salary.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("s.worker_id = $%d", argIdx))
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("s.payment_date >= $%d::date", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("s.payment_date <= $%d::date", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM salary_payments s WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary payments: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf("%s WHERE %s ORDER BY s.payment_date DESC, s.created_at DESC LIMIT $%d OFFSET $%d",
		salarySelect, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary payments: %w", err)
	}
	payments, err := collectSalaryPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// FindByPaymentDate implements salary.SalaryPaymentRepository.
func (r *salaryPaymentRepositoryImpl) FindByPaymentDate(ctx context.Context, workerID *string, from, to time.Time) ([]salary.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := salarySelect + ` WHERE s.payment_date BETWEEN $1 AND $2`
	args := []interface{}{from, to}
	if workerID != nil {
		query += ` AND s.worker_id = $3`
		args = append(args, *workerID)
	}
	query += ` ORDER BY s.payment_date ASC, s.created_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary payments: %w", err)
	}
	return collectSalaryPayments(rows)
}

// Update implements salary.SalaryPaymentRepository.
func (r *salaryPaymentRepositoryImpl) Update(ctx context.Context, p salary.Payment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_payments
		SET worker_id = $1, amount = $2, payment_date = $3, period_from = $4, period_to = $5,
		    worked_days = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`
	commandTag, err := q.Exec(ctx, query,
		p.WorkerID, p.Amount, p.PaymentDate, p.PeriodFrom, p.PeriodTo, p.WorkedDays, p.Notes, p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to update salary payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return salary.ErrSalaryPaymentNotFound
	}
	return nil
}

// Delete implements salary.SalaryPaymentRepository.
func (r *salaryPaymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM salary_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return salary.ErrSalaryPaymentNotFound
	}
	return nil
}
