package attendance

import (
	"time"

	"github.com/alefshop/attendance-backend/internal/pkg/validator"
	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
)

type CheckInRequest struct {
	WorkerID string `json:"worker_id"`
}

func (r *CheckInRequest) Validate() error {
	return validateWorkerID(r.WorkerID)
}

type CheckOutRequest struct {
	WorkerID string `json:"worker_id"`
}

func (r *CheckOutRequest) Validate() error {
	return validateWorkerID(r.WorkerID)
}

func validateWorkerID(id string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(id) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	} else if !validator.IsValidUUID(id) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest lets an administrator fix a forgotten or wrong
// check-in/check-out. Timestamps are RFC 3339.
type UpdateAttendanceRequest struct {
	ID            string  `json:"-"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	ClearCheckOut bool    `json:"clear_check_out,omitempty"`

	CheckInTime  *time.Time `json:"-"`
	CheckOutTime *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.CheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an RFC 3339 timestamp",
			})
		} else {
			r.CheckInTime = &t
		}
	}

	if r.CheckOut != nil {
		if r.ClearCheckOut {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out cannot be set together with clear_check_out",
			})
		} else if t, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC 3339 timestamp",
			})
		} else {
			r.CheckOutTime = &t
		}
	}

	if r.CheckIn == nil && r.CheckOut == nil && !r.ClearCheckOut {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "at least one of check_in, check_out or clear_check_out is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	WorkerID      string  `json:"worker_id"`
	WorkerName    *string `json:"worker_name,omitempty"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in"`
	CheckOut      *string `json:"check_out"`
	WorkHours     string  `json:"work_hours"`
	WorkedMinutes int     `json:"worked_minutes"`
	IsLate        bool    `json:"is_late"`
	LateMinutes   int     `json:"late_minutes"`
	Status        string  `json:"status"`
}

// NewAttendanceResponse renders a record together with its day summary.
// Timestamps are shown in loc.
func NewAttendanceResponse(a Attendance, s worktime.DaySummary, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		WorkerID:      a.WorkerID,
		WorkerName:    a.WorkerName,
		Date:          a.Date.Format(time.DateOnly),
		CheckIn:       formatTimestamp(a.CheckIn, loc),
		CheckOut:      formatTimestamp(a.CheckOut, loc),
		WorkHours:     worktime.WorkHours(s),
		WorkedMinutes: s.WorkedMinutes,
		IsLate:        s.IsLate,
		LateMinutes:   s.LateMinutes,
		Status:        string(s.Status),
	}
}

func formatTimestamp(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

type TodayEntry struct {
	WorkerID     string  `json:"worker_id"`
	WorkerName   string  `json:"worker_name"`
	AttendanceID *string `json:"attendance_id,omitempty"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	WorkHours    string  `json:"work_hours"`
	IsLate       bool    `json:"is_late"`
	LateMinutes  int     `json:"late_minutes"`
	Status       string  `json:"status"`
}

type TodayResponse struct {
	Date    string       `json:"date"`
	Total   int          `json:"total"`
	Present int          `json:"present"`
	Working int          `json:"working"`
	Absent  int          `json:"absent"`
	Workers []TodayEntry `json:"workers"`
}
