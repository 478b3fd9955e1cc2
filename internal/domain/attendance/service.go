package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Today lists every worker of the user with today's status.
	Today(ctx context.Context) (TodayResponse, error)

	// UpdateAttendance corrects a record's timestamps.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error

	// AutoCheckout closes records left open on days before now and reports how many.
	AutoCheckout(ctx context.Context, now time.Time) (int, error)
}
