package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/alefshop/attendance-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.worker_id, a.date, a.check_in, a.check_out, a.created_at, a.updated_at, w.name`

const attendanceFrom = ` FROM attendances a JOIN workers w ON w.id = a.worker_id `

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.WorkerID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.CreatedAt, &att.UpdatedAt, &att.WorkerName,
	)
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	result := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (id, worker_id, date, check_in, check_out)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (worker_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(),
		newAttendance.WorkerID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id, userID string) (attendance.Attendance, error) {
	return a.getOne(ctx, `SELECT `+attendanceColumns+attendanceFrom+`WHERE a.id = $1 AND w.user_id = $2`, id, userID)
}

// LockByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockByID(ctx context.Context, id, userID string) (attendance.Attendance, error) {
	return a.getOne(ctx, `SELECT `+attendanceColumns+attendanceFrom+`WHERE a.id = $1 AND w.user_id = $2 FOR UPDATE OF a`, id, userID)
}

func (a *attendanceRepository) getOne(ctx context.Context, query string, args ...any) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByWorkerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `WHERE a.worker_id = $1 AND a.date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, workerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by date: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, att.CheckIn, att.CheckOut, att.ID).Scan(&att.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return att, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		DELETE FROM attendances a
		USING workers w
		WHERE w.id = a.worker_id AND a.id = $1 AND w.user_id = $2
	`

	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE w.user_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date ASC, a.check_in ASC NULLS LAST`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListByWorkerAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByWorkerAndRange(ctx context.Context, workerID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.worker_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date ASC`

	rows, err := q.Query(ctx, query, workerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListRecentByWorker implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRecentByWorker(ctx context.Context, workerID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.worker_id = $1
		ORDER BY a.date DESC
		LIMIT $2`

	rows, err := q.Query(ctx, query, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.check_in IS NOT NULL AND a.check_out IS NULL AND a.date < $1
		ORDER BY a.date ASC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	return collectAttendances(rows)
}

// CloseOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseOpen(ctx context.Context, id string, checkOut time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = GREATEST($1::timestamptz, check_in), updated_at = NOW()
		WHERE id = $2 AND check_in IS NOT NULL AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOut, id)
	if err != nil {
		return false, fmt.Errorf("failed to close attendance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
