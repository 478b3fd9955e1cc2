package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("worker has already checked in today")
	ErrNotCheckedIn       = errors.New("worker has not checked in today, check in first")
	ErrAlreadyCheckedOut  = errors.New("worker has already checked out today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidTimeRange   = errors.New("check_out must not be before check_in")
	ErrCheckOutWithoutIn  = errors.New("check_out requires check_in")
	ErrDateMismatch       = errors.New("check_in must fall on the attendance date")
)
