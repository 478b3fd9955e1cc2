package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/database"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	worker.WorkerRepository

	calc           *worktime.Calculator
	loc            *time.Location
	autoCheckoutAt worktime.ClockTime
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	workerRepository worker.WorkerRepository,
	loc *time.Location,
	expectedStart worktime.ClockTime,
	autoCheckoutAt worktime.ClockTime,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		WorkerRepository:     workerRepository,
		calc:                 worktime.NewCalculator(expectedStart),
		loc:                  loc,
		autoCheckoutAt:       autoCheckoutAt,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) respond(a attendance.Attendance) attendance.AttendanceResponse {
	a = a.In(s.loc)
	return attendance.NewAttendanceResponse(a, s.calc.DaySummary(a.Record()), s.loc)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.loc)
	today := worktime.DateIn(now, s.loc)

	var rec attendance.Attendance
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Serializes concurrent transitions for the same worker.
		w, err := s.WorkerRepository.LockByID(ctx, req.WorkerID, userID)
		if err != nil {
			return err
		}

		existing, err := s.AttendanceRepository.GetByWorkerAndDate(ctx, w.ID, today)
		switch {
		case errors.Is(err, attendance.ErrAttendanceNotFound):
			rec = attendance.Attendance{WorkerID: w.ID, Date: today}
			if err := attendance.CheckIn(&rec, now); err != nil {
				return err
			}
			created, err := s.AttendanceRepository.Create(ctx, rec)
			if err != nil {
				return err
			}
			rec = created
		case err != nil:
			return fmt.Errorf("failed to get today's attendance: %w", err)
		default:
			rec = existing
			if err := attendance.CheckIn(&rec, now); err != nil {
				return err
			}
			updated, err := s.AttendanceRepository.Update(ctx, rec)
			if err != nil {
				return err
			}
			rec = updated
		}

		rec.WorkerName = &w.Name
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("worker checked in", "worker_id", rec.WorkerID, "attendance_id", rec.ID)
	return s.respond(rec), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.loc)
	today := worktime.DateIn(now, s.loc)

	var rec attendance.Attendance
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.WorkerRepository.LockByID(ctx, req.WorkerID, userID)
		if err != nil {
			return err
		}

		existing, err := s.AttendanceRepository.GetByWorkerAndDate(ctx, w.ID, today)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		rec = existing
		if err := attendance.CheckOut(&rec, now); err != nil {
			return err
		}
		updated, err := s.AttendanceRepository.Update(ctx, rec)
		if err != nil {
			return err
		}
		rec = updated
		rec.WorkerName = &w.Name
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("worker checked out", "worker_id", rec.WorkerID, "attendance_id", rec.ID)
	return s.respond(rec), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := worktime.DateIn(s.now(), s.loc)

	workers, err := s.WorkerRepository.ListByUser(ctx, userID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	records, err := s.AttendanceRepository.ListByUserAndRange(ctx, userID, today, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	byWorker := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byWorker[r.WorkerID] = r
	}

	resp := attendance.TodayResponse{
		Date:    today.Format(time.DateOnly),
		Total:   len(workers),
		Workers: make([]attendance.TodayEntry, 0, len(workers)),
	}

	for _, w := range workers {
		entry := attendance.TodayEntry{
			WorkerID:   w.ID,
			WorkerName: w.Name,
			WorkHours:  "-",
			Status:     string(worktime.StatusAbsent),
		}
		if rec, ok := byWorker[w.ID]; ok {
			r := s.respond(rec)
			entry.AttendanceID = &r.ID
			entry.CheckIn = r.CheckIn
			entry.CheckOut = r.CheckOut
			entry.WorkHours = r.WorkHours
			entry.IsLate = r.IsLate
			entry.LateMinutes = r.LateMinutes
			entry.Status = r.Status
		}

		switch worktime.Status(entry.Status) {
		case worktime.StatusPresent:
			resp.Present++
		case worktime.StatusWorking:
			resp.Working++
		default:
			resp.Absent++
		}
		resp.Workers = append(resp.Workers, entry)
	}

	return resp, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := s.AttendanceRepository.LockByID(ctx, req.ID, userID)
		if err != nil {
			return err
		}

		if req.CheckInTime != nil {
			if !worktime.SameDay(worktime.DateIn(*req.CheckInTime, s.loc), rec.Date) {
				return attendance.ErrDateMismatch
			}
			in := *req.CheckInTime
			rec.CheckIn = &in
		}
		if req.CheckOutTime != nil {
			out := *req.CheckOutTime
			rec.CheckOut = &out
		}
		if req.ClearCheckOut {
			rec.CheckOut = nil
		}

		if err := attendance.ValidateTimes(rec.CheckIn, rec.CheckOut); err != nil {
			return err
		}

		updated, err = s.AttendanceRepository.Update(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance corrected", "attendance_id", updated.ID, "user_id", userID)
	return s.respond(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.AttendanceRepository.Delete(ctx, id, userID); err != nil {
		return err
	}

	slog.Info("attendance deleted", "attendance_id", id, "user_id", userID)
	return nil
}

// AutoCheckout implements attendance.AttendanceService. It runs without a
// user in ctx and covers every account.
func (s *AttendanceServiceImpl) AutoCheckout(ctx context.Context, now time.Time) (int, error) {
	today := worktime.DateIn(now, s.loc)

	open, err := s.AttendanceRepository.ListOpenBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendances: %w", err)
	}

	closed := 0
	var errs []error
	for _, rec := range open {
		rec = rec.In(s.loc)
		at := attendance.AutoCheckoutTime(rec, s.autoCheckoutAt.Hour, s.autoCheckoutAt.Minute, s.loc)

		ok, err := s.AttendanceRepository.CloseOpen(ctx, rec.ID, at)
		if err != nil {
			errs = append(errs, fmt.Errorf("attendance %s: %w", rec.ID, err))
			continue
		}
		if ok {
			closed++
		}
	}

	return closed, errors.Join(errs...)
}
