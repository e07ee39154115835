package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type vehicleRepositoryImpl struct {
	db *database.DB
}

func NewVehicleRepository(db *database.DB) vehicle.VehicleRepository {
	return &vehicleRepositoryImpl{db: db}
}

const vehicleColumns = `id, registration_no, type, model, is_active, notes, created_at, updated_at`

func scanVehicle(row pgx.Row) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID,
		&v.RegistrationNo,
		&v.Type,
		&v.Model,
		&v.IsActive,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

// Create implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicles (registration_no, type, model, is_active, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + vehicleColumns

	result, err := scanVehicle(q.QueryRow(ctx, query, v.RegistrationNo, v.Type, v.Model, v.IsActive, v.Notes))
	if err != nil {
		if isUniqueViolation(err) {
			return vehicle.Vehicle{}, vehicle.ErrRegistrationNumberExists
		}
		return vehicle.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return result, nil
}

// GetByID implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanVehicle(q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
		}
		return vehicle.Vehicle{}, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return result, nil
}

// List implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) List(ctx context.Context, filter vehicle.VehicleFilter) ([]vehicle.Vehicle, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Type != nil && *filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(registration_no ILIKE $%d OR model ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM vehicles WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM vehicles
		WHERE %s
		ORDER BY registration_no ASC
		LIMIT $%d OFFSET $%d
	`, vehicleColumns, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return vehicles, total, nil
}

// Update implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) Update(ctx context.Context, req vehicle.UpdateVehicleRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE vehicles SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.RegistrationNo != nil {
		query += fmt.Sprintf(", registration_no = $%d", argIdx)
		args = append(args, *req.RegistrationNo)
		argIdx++
	}
	if req.Type != nil {
		query += fmt.Sprintf(", type = $%d", argIdx)
		args = append(args, *req.Type)
		argIdx++
	}
	if req.Model != nil {
		query += fmt.Sprintf(", model = $%d", argIdx)
		args = append(args, *req.Model)
		argIdx++
	}
	if req.IsActive != nil {
		query += fmt.Sprintf(", is_active = $%d", argIdx)
		args = append(args, *req.IsActive)
		argIdx++
	}
	if req.Notes != nil {
		query += fmt.Sprintf(", notes = $%d", argIdx)
		args = append(args, *req.Notes)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return vehicle.ErrRegistrationNumberExists
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return vehicle.ErrVehicleNotFound
	}

	return nil
}

// Delete implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return vehicle.ErrVehicleInUse
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return vehicle.ErrVehicleNotFound
	}

	return nil
}
