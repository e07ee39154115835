package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.worker_id, a.date, a.status, a.notes, a.created_at, a.updated_at,
	       w.name AS worker_name
	FROM worker_attendance a
	LEFT JOIN workers w ON a.worker_id = w.id
`

func scanAttendance(row pgx.Row) (attendance.WorkerAttendance, error) {
	var att attendance.WorkerAttendance
	err := row.Scan(
		&att.ID, &att.WorkerID, &att.Date, &att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.WorkerName,
	)
	return att, err
}

func collectAttendance(rows pgx.Rows) ([]attendance.WorkerAttendance, error) {
	defer rows.Close()

	var records []attendance.WorkerAttendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.WorkerAttendance) (attendance.WorkerAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO worker_attendance (worker_id, date, status, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, record.WorkerID, record.Date, record.Status, record.Notes).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.WorkerAttendance{}, attendance.ErrAttendanceAlreadyRecorded
		}
		if isForeignKeyViolation(err) {
			return attendance.WorkerAttendance{}, worker.ErrWorkerNotFound
		}
		return attendance.WorkerAttendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.GetByID(ctx, id)
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.WorkerAttendance) (attendance.WorkerAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO worker_attendance (worker_id, date, status, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (worker_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, record.WorkerID, record.Date, record.Status, record.Notes).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return attendance.WorkerAttendance{}, worker.ErrWorkerNotFound
		}
		return attendance.WorkerAttendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return a.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.WorkerAttendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WorkerAttendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.WorkerAttendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.WorkerAttendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("a.worker_id = $%d", argIdx))
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM worker_attendance a WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	limit, offset := pageOffset(filter.Page, filter.Limit)
	query := fmt.Sprintf("%s WHERE %s ORDER BY a.date DESC, w.name ASC LIMIT $%d OFFSET $%d",
		attendanceSelect, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	records, err := collectAttendance(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindByWorkerAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + ` WHERE a.worker_id = $1 AND a.date BETWEEN $2 AND $3 ORDER BY a.date ASC`
	rows, err := q.Query(ctx, query, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load worker attendance: %w", err)
	}
	return collectAttendance(rows)
}

// FindByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByRange(ctx context.Context, from, to time.Time) ([]attendance.WorkerAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + ` WHERE a.date BETWEEN $1 AND $2 ORDER BY a.worker_id, a.date ASC`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	return collectAttendance(rows)
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM worker_attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
