package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

const expenseSelect = `
	SELECT
		e.id, e.vehicle_id, e.category, e.amount, e.date, e.date_to, e.description,
		e.receipt_path, e.created_at, e.updated_at,
		v.registration_no AS vehicle_registration_no
	FROM vehicle_expenses e
	LEFT JOIN vehicles v ON e.vehicle_id = v.id
`

func scanExpense(row pgx.Row) (expense.VehicleExpense, error) {
	var e expense.VehicleExpense
	err := row.Scan(
		&e.ID, &e.VehicleID, &e.Category, &e.Amount, &e.Date, &e.DateTo, &e.Description,
		&e.ReceiptPath, &e.CreatedAt, &e.UpdatedAt,
		&e.VehicleRegistrationNo,
	)
	return e, err
}

// expenseWhere filters on the expense start date; date_to is informational.
func expenseWhere(filter expense.ExpenseFilter) (string, []interface{}, int) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.VehicleID != nil && *filter.VehicleID != "" {
		conditions = append(conditions, fmt.Sprintf("e.vehicle_id = $%d", argIdx))
		args = append(args, *filter.VehicleID)
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("e.date >= $%d::date", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("e.date <= $%d::date", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	return strings.Join(conditions, " AND "), args, argIdx
}

func collectExpenses(rows pgx.Rows) ([]expense.VehicleExpense, error) {
	defer rows.Close()

	var expenses []expense.VehicleExpense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return expenses, nil
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.VehicleExpense) (expense.VehicleExpense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicle_expenses (vehicle_id, category, amount, date, date_to, description, receipt_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		e.VehicleID, e.Category, e.Amount, e.Date, e.DateTo, e.Description, e.ReceiptPath,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return expense.VehicleExpense{}, vehicle.ErrVehicleNotFound
		}
		return expense.VehicleExpense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.VehicleExpense, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanExpense(q.QueryRow(ctx, expenseSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.VehicleExpense{}, expense.ErrExpenseNotFound
		}
		return expense.VehicleExpense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return result, nil
}

// List implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.VehicleExpense, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := expenseWhere(filter)

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM vehicle_expenses e WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf("%s WHERE %s ORDER BY e.date DESC, e.created_at DESC LIMIT $%d OFFSET $%d",
		expenseSelect, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// FindAll implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) FindAll(ctx context.Context, filter expense.ExpenseFilter) ([]expense.VehicleExpense, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := expenseWhere(filter)
	query := fmt.Sprintf("%s WHERE %s ORDER BY e.date ASC, e.created_at ASC", expenseSelect, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return collectExpenses(rows)
}

// Update implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Update(ctx context.Context, e expense.VehicleExpense) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vehicle_expenses
		SET vehicle_id = $1, category = $2, amount = $3, date = $4, date_to = $5,
		    description = $6, receipt_path = $7, updated_at = NOW()
		WHERE id = $8
	`
	commandTag, err := q.Exec(ctx, query,
		e.VehicleID, e.Category, e.Amount, e.Date, e.DateTo, e.Description, e.ReceiptPath, e.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return vehicle.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

// UpdateReceiptPath implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) UpdateReceiptPath(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE vehicle_expenses SET receipt_path = $1, updated_at = NOW() WHERE id = $2`, path, id)
	if err != nil {
		return fmt.Errorf("failed to update receipt path: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

// Delete implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM vehicle_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}
