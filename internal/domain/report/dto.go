package report

import (
	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/validator"
)

// ========================================
// DAILY ATTENDANCE REPORT
// ========================================

type DailyAttendanceRequest struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *DailyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyAttendanceRow struct {
	WorkerID       string  `json:"worker_id"`
	WorkerName     string  `json:"worker_name"`
	AttendanceID   *string `json:"attendance_id,omitempty"`
	CheckIn        *string `json:"check_in"`
	CheckOut       *string `json:"check_out"`
	WorkHours      string  `json:"work_hours"`
	TotalMinutes   int     `json:"total_minutes"`
	IsLate         bool    `json:"is_late"`
	LateMinutes    int     `json:"late_minutes"`
	WeeklyHours    string  `json:"weekly_hours"`
	WeeklyMinutes  int     `json:"weekly_minutes"`
	MonthlyHours   string  `json:"monthly_hours"`
	MonthlyMinutes int     `json:"monthly_minutes"`
	Status         string  `json:"status"`
}

type DailyAttendanceReport struct {
	Date          string               `json:"date"`
	ExpectedStart string               `json:"expected_start"`
	WeekStart     string               `json:"week_start"`
	WeekEnd       string               `json:"week_end"`
	Total         int                  `json:"total"`
	Present       int                  `json:"present"`
	Absent        int                  `json:"absent"`
	Rows          []DailyAttendanceRow `json:"rows"`
}

// ========================================
// WORKER REPORT
// ========================================

const RecentLimit = 30

type WorkerReport struct {
	Worker            worker.WorkerResponse           `json:"worker"`
	TotalPaid         int64                           `json:"total_paid"`
	RecentAttendances []attendance.AttendanceResponse `json:"recent_attendances"`
	RecentFinances    []finance.FinanceResponse       `json:"recent_finances"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	WorkerID string  `json:"-"`
	Month    *string `json:"month,omitempty"` // YYYY-MM, defaults to the current month
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id must be a valid UUID",
		})
	}

	if r.Month != nil && *r.Month != "" {
		if _, valid := validator.IsValidMonth(*r.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyRow struct {
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	Minutes      int    `json:"minutes"`
	Hours        string `json:"hours"`
	FinanceTotal int64  `json:"finance_total"`
}

type MonthlyReport struct {
	Worker       worker.WorkerResponse `json:"worker"`
	Month        string                `json:"month"`
	PeriodStart  string                `json:"period_start"`
	PeriodEnd    string                `json:"period_end"`
	TotalMinutes int                   `json:"total_minutes"`
	TotalHours   string                `json:"total_hours"`
	TotalFinance int64                 `json:"total_finance"`
	Rows         []MonthlyRow          `json:"rows"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
