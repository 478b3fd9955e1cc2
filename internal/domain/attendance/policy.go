package attendance

import "time"

// CheckIn stamps rec with now. A record holds at most one check-in.
func CheckIn(rec *Attendance, now time.Time) error {
	if rec.CheckIn != nil {
		return ErrAlreadyCheckedIn
	}
	rec.CheckIn = &now
	return nil
}

// CheckOut closes an open record. A clock that stepped backwards is clamped
// to the check-in so the record never ends before it starts.
func CheckOut(rec *Attendance, now time.Time) error {
	if rec == nil || rec.CheckIn == nil {
		return ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}
	if now.Before(*rec.CheckIn) {
		now = *rec.CheckIn
	}
	rec.CheckOut = &now
	return nil
}

// ValidateTimes checks the record invariant used by manual corrections.
func ValidateTimes(checkIn, checkOut *time.Time) error {
	if checkOut == nil {
		return nil
	}
	if checkIn == nil {
		return ErrCheckOutWithoutIn
	}
	if checkOut.Before(*checkIn) {
		return ErrInvalidTimeRange
	}
	return nil
}

// AutoCheckoutTime is when a record left open past its day gets closed:
// closeAt on the record's date, or the check-in if that is later.
func AutoCheckoutTime(rec Attendance, closeHour, closeMinute int, loc *time.Location) time.Time {
	y, m, d := rec.Date.Date()
	closeAt := time.Date(y, m, d, closeHour, closeMinute, 0, 0, loc)
	if rec.CheckIn != nil && rec.CheckIn.After(closeAt) {
		return *rec.CheckIn
	}
	return closeAt
}
