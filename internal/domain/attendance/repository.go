package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Ranges are inclusive calendar dates.
type AttendanceRepository interface {
	// Create inserts a record; a second record for the same worker and day
	// returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetByID is scoped to the owning user through the worker.
	GetByID(ctx context.Context, id, userID string) (Attendance, error)
	// LockByID is GetByID holding a row lock until the surrounding transaction ends.
	LockByID(ctx context.Context, id, userID string) (Attendance, error)

	// GetByWorkerAndDate returns ErrAttendanceNotFound when the day has no record.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (Attendance, error)

	Update(ctx context.Context, a Attendance) (Attendance, error)
	Delete(ctx context.Context, id, userID string) error

	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)
	ListByWorkerAndRange(ctx context.Context, workerID string, start, end time.Time) ([]Attendance, error)
	ListRecentByWorker(ctx context.Context, workerID string, limit int) ([]Attendance, error)

	// ListOpenBefore returns records with a check-in, no check-out, dated before date.
	ListOpenBefore(ctx context.Context, date time.Time) ([]Attendance, error)
	// CloseOpen sets check_out only if the record is still open; false means it was not.
	CloseOpen(ctx context.Context, id string, checkOut time.Time) (bool, error)
}
