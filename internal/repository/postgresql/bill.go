package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type billRepositoryImpl struct {
	db *database.DB
}

func NewBillRepository(db *database.DB) bill.BillRepository {
	return &billRepositoryImpl{db: db}
}

const billSelect = `
	SELECT
		b.id, b.vehicle_id, b.client_id, b.month, b.year, b.rate, b.per_day_km,
		b.overtime_rate, b.overtime_kms, b.total_hours_sum, b.overtime_amount,
		b.total_amount, b.notes, b.created_at, b.updated_at,
		v.registration_no AS vehicle_registration_no,
		c.name AS client_name
	FROM monthly_vehicle_bills b
	LEFT JOIN vehicles v ON b.vehicle_id = v.id
	LEFT JOIN clients c ON b.client_id = c.id
`

func scanBill(row pgx.Row) (bill.MonthlyVehicleBill, error) {
	var b bill.MonthlyVehicleBill
	err := row.Scan(
		&b.ID, &b.VehicleID, &b.ClientID, &b.Month, &b.Year, &b.Rate, &b.PerDayKm,
		&b.OvertimeRate, &b.OvertimeKms, &b.TotalHoursSum, &b.OvertimeAmount,
		&b.TotalAmount, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.VehicleRegistrationNo, &b.ClientName,
	)
	return b, err
}

// Create implements bill.BillRepository.
func (r *billRepositoryImpl) Create(ctx context.Context, b bill.MonthlyVehicleBill) (bill.MonthlyVehicleBill, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_vehicle_bills (
			vehicle_id, client_id, month, year, rate, per_day_km, overtime_rate, overtime_kms,
			total_hours_sum, overtime_amount, total_amount, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		b.VehicleID, b.ClientID, b.Month, b.Year, b.Rate, b.PerDayKm, b.OvertimeRate, b.OvertimeKms,
		b.TotalHoursSum, b.OvertimeAmount, b.TotalAmount, b.Notes,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return bill.MonthlyVehicleBill{}, bill.ErrBillAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return bill.MonthlyVehicleBill{}, client.ErrClientNotFound
		}
		return bill.MonthlyVehicleBill{}, fmt.Errorf("failed to create bill: %w", err)
	}

	if err := r.insertItems(ctx, id, b.Items); err != nil {
		return bill.MonthlyVehicleBill{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *billRepositoryImpl) insertItems(ctx context.Context, billID string, items []bill.BillItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_bill_items (bill_id, item_date, start_meter, end_meter, total_hours, rate, amount, is_manual, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, item := range items {
		_, err := q.Exec(ctx, query,
			billID, item.ItemDate, item.StartMeter, item.EndMeter, item.TotalHours,
			item.Rate, item.Amount, item.IsManual, item.Remarks,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill item: %w", err)
		}
	}
	return nil
}

func (r *billRepositoryImpl) loadItems(ctx context.Context, billID string) ([]bill.BillItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, bill_id, item_date, start_meter, end_meter, total_hours, rate, amount, is_manual, remarks
		FROM monthly_bill_items
		WHERE bill_id = $1
		ORDER BY item_date ASC
	`
	rows, err := q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill items: %w", err)
	}
	defer rows.Close()

	var items []bill.BillItem
	for rows.Next() {
		var item bill.BillItem
		if err := rows.Scan(
			&item.ID, &item.BillID, &item.ItemDate, &item.StartMeter, &item.EndMeter,
			&item.TotalHours, &item.Rate, &item.Amount, &item.IsManual, &item.Remarks,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

// GetByID implements bill.BillRepository.
func (r *billRepositoryImpl) GetByID(ctx context.Context, id string) (bill.MonthlyVehicleBill, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanBill(q.QueryRow(ctx, billSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill.MonthlyVehicleBill{}, bill.ErrBillNotFound
		}
		return bill.MonthlyVehicleBill{}, fmt.Errorf("failed to get bill: %w", err)
	}

	result.Items, err = r.loadItems(ctx, id)
	if err != nil {
		return bill.MonthlyVehicleBill{}, err
	}
	return result, nil
}

// List implements bill.BillRepository. Items are left empty.
func (r *billRepositoryImpl) List(ctx context.Context, filter bill.BillFilter) ([]bill.MonthlyVehicleBill, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.VehicleID != nil && *filter.VehicleID != "" {
		conditions = append(conditions, fmt.Sprintf("b.vehicle_id = $%d", argIdx))
		args = append(args, *filter.VehicleID)
		argIdx++
	}
	if filter.ClientID != nil && *filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("b.client_id = $%d", argIdx))
		args = append(args, *filter.ClientID)
		argIdx++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("b.month = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("b.year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM monthly_vehicle_bills b WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf("%s WHERE %s ORDER BY b.year DESC, b.month DESC, v.registration_no ASC LIMIT $%d OFFSET $%d",
		billSelect, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []bill.MonthlyVehicleBill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return bills, total, nil
}

// Update implements bill.BillRepository. Items are replaced wholesale, so callers run it
// inside a transaction.
func (r *billRepositoryImpl) Update(ctx context.Context, b bill.MonthlyVehicleBill) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_vehicle_bills
		SET vehicle_id = $1, client_id = $2, month = $3, year = $4, rate = $5, per_day_km = $6,
		    overtime_rate = $7, overtime_kms = $8, total_hours_sum = $9, overtime_amount = $10,
		    total_amount = $11, notes = $12, updated_at = NOW()
		WHERE id = $13
	`
	commandTag, err := q.Exec(ctx, query,
		b.VehicleID, b.ClientID, b.Month, b.Year, b.Rate, b.PerDayKm,
		b.OvertimeRate, b.OvertimeKms, b.TotalHoursSum, b.OvertimeAmount,
		b.TotalAmount, b.Notes, b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return bill.ErrBillAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return client.ErrClientNotFound
		}
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return bill.ErrBillNotFound
	}

	if _, err := q.Exec(ctx, `DELETE FROM monthly_bill_items WHERE bill_id = $1`, b.ID); err != nil {
		return fmt.Errorf("failed to clear bill items: %w", err)
	}
	return r.insertItems(ctx, b.ID, b.Items)
}

// Delete implements bill.BillRepository. Items go with the header via ON DELETE CASCADE.
func (r *billRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM monthly_vehicle_bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}
