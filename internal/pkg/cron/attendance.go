package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
)

const AutoCheckoutJob = "auto_checkout"

// AttendanceJobs closes attendance records that were left open overnight.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService, now: time.Now}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, every time.Duration) {
	scheduler.AddJob(AutoCheckoutJob, every, j.AutoCheckout)
}

func (j *AttendanceJobs) AutoCheckout(ctx context.Context) error {
	closed, err := j.attendanceService.AutoCheckout(ctx, j.now())
	if closed > 0 {
		slog.Info("cron: auto-checked out open attendances", "count", closed)
	}
	if err != nil {
		return fmt.Errorf("auto checkout: %w", err)
	}
	return nil
}
