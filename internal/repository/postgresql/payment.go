package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

const paymentSelect = `
	SELECT
		p.id, p.client_id, p.amount, p.date, p.method, p.reference, p.notes,
		p.payable_type, p.payable_id, p.created_at, p.updated_at,
		c.name AS client_name
	FROM payments p
	LEFT JOIN clients c ON p.client_id = c.id
`

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var (
		p           payment.Payment
		payableType *string
		payableID   *string
	)
	err := row.Scan(
		&p.ID, &p.ClientID, &p.Amount, &p.Date, &p.Method, &p.Reference, &p.Notes,
		&payableType, &payableID, &p.CreatedAt, &p.UpdatedAt,
		&p.ClientName,
	)
	if err != nil {
		return payment.Payment{}, err
	}
	if payableType != nil && payableID != nil {
		p.Payable = &payment.PayableRef{Kind: payment.PayableKind(*payableType), ID: *payableID}
	}
	return p, nil
}

// payableColumns splits a PayableRef into the nullable column pair.
func payableColumns(ref *payment.PayableRef) (*string, *string) {
	if ref == nil {
		return nil, nil
	}
	kind := string(ref.Kind)
	id := ref.ID
	return &kind, &id
}

func paymentWhere(filter payment.PaymentFilter) (string, []interface{}, int) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ClientID != nil && *filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("p.client_id = $%d", argIdx))
		args = append(args, *filter.ClientID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		conditions = append(conditions, fmt.Sprintf("(p.payable_type = 'job' AND p.payable_id = $%d)", argIdx))
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.Method != nil && *filter.Method != "" {
		conditions = append(conditions, fmt.Sprintf("p.method = $%d", argIdx))
		args = append(args, *filter.Method)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("p.date >= $%d::date", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("p.date <= $%d::date", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	return strings.Join(conditions, " AND "), args, argIdx
}

func collectPayments(rows pgx.Rows) ([]payment.Payment, error) {
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, nil
}

// Create implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	payableType, payableID := payableColumns(p.Payable)
	query := `
		INSERT INTO payments (client_id, amount, date, method, reference, notes, payable_type, payable_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		p.ClientID, p.Amount, p.Date, p.Method, p.Reference, p.Notes, payableType, payableID,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payment.Payment{}, payment.ErrPayableNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanPayment(q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return result, nil
}

// List implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) List(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := paymentWhere(filter)

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payments p WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf("%s WHERE %s ORDER BY p.date DESC, p.created_at DESC LIMIT $%d OFFSET $%d",
		paymentSelect, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// FindAll implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) FindAll(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := paymentWhere(filter)
	query := fmt.Sprintf("%s WHERE %s ORDER BY p.date ASC, p.created_at ASC", paymentSelect, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return collectPayments(rows)
}

// Update implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Update(ctx context.Context, p payment.Payment) error {
	q := GetQuerier(ctx, r.db)

	payableType, payableID := payableColumns(p.Payable)
	query := `
		UPDATE payments
		SET client_id = $1, amount = $2, date = $3, method = $4, reference = $5,
		    notes = $6, payable_type = $7, payable_id = $8, updated_at = NOW()
		WHERE id = $9
	`
	commandTag, err := q.Exec(ctx, query,
		p.ClientID, p.Amount, p.Date, p.Method, p.Reference, p.Notes, payableType, payableID, p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payment.ErrPayableNotFound
		}
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

// Delete implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}
