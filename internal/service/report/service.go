package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/domain/report"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/export"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	finance.FinanceRepository
	worker.WorkerRepository

	calc      *worktime.Calculator
	loc       *time.Location
	weekStart time.Weekday
	now       func() time.Time
}

func NewReportService(
	attendanceRepository attendance.AttendanceRepository,
	financeRepository finance.FinanceRepository,
	workerRepository worker.WorkerRepository,
	loc *time.Location,
	expectedStart worktime.ClockTime,
	weekStart time.Weekday,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepository,
		FinanceRepository:    financeRepository,
		WorkerRepository:     workerRepository,
		calc:                 worktime.NewCalculator(expectedStart),
		loc:                  loc,
		weekStart:            weekStart,
		now:                  time.Now,
	}
}

// DailyAttendance implements report.ReportService.
func (s *ReportServiceImpl) DailyAttendance(ctx context.Context, req report.DailyAttendanceRequest) (report.DailyAttendanceReport, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return report.DailyAttendanceReport{}, err
	}

	day := worktime.DateIn(s.now(), s.loc)
	if req.Date != nil && *req.Date != "" {
		day, err = time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return report.DailyAttendanceReport{}, fmt.Errorf("%w: %v", report.ErrInvalidPeriod, err)
		}
	}

	weekStart, weekEnd := worktime.WeekBounds(day, s.weekStart)
	monthStart, monthEnd := worktime.MonthBounds(day)
	from := minTime(weekStart, monthStart)
	to := maxTime(weekEnd, monthEnd)

	var (
		workers []worker.Worker
		records []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		workers, err = s.WorkerRepository.ListByUser(gCtx, userID)
		return err
	})

	// One query covers both the week and the month around the day.
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByUserAndRange(gCtx, userID, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.DailyAttendanceReport{}, fmt.Errorf("failed to load attendance data: %w", err)
	}

	byWorker := make(map[string][]attendance.Attendance)
	for _, r := range records {
		byWorker[r.WorkerID] = append(byWorker[r.WorkerID], r.In(s.loc))
	}

	resp := report.DailyAttendanceReport{
		Date:          day.Format(time.DateOnly),
		ExpectedStart: s.calc.ExpectedStart().String(),
		WeekStart:     weekStart.Format(time.DateOnly),
		WeekEnd:       weekEnd.Format(time.DateOnly),
		Total:         len(workers),
		Rows:          make([]report.DailyAttendanceRow, 0, len(workers)),
	}

	checkIns := make(map[string]time.Time)
	for _, w := range workers {
		own := byWorker[w.ID]
		recs := attendance.Records(own)

		row := report.DailyAttendanceRow{
			WorkerID:   w.ID,
			WorkerName: w.Name,
			WorkHours:  "-",
			Status:     string(worktime.StatusAbsent),
		}

		for _, a := range own {
			if !worktime.SameDay(a.Date, day) {
				continue
			}
			summary := s.calc.DaySummary(a.Record())
			ar := attendance.NewAttendanceResponse(a, summary, s.loc)
			row.AttendanceID = &ar.ID
			row.CheckIn = ar.CheckIn
			row.CheckOut = ar.CheckOut
			row.WorkHours = ar.WorkHours
			row.TotalMinutes = summary.WorkedMinutes
			row.IsLate = summary.IsLate
			row.LateMinutes = summary.LateMinutes
			row.Status = ar.Status
			if a.CheckIn != nil {
				checkIns[w.ID] = *a.CheckIn
			}
			break
		}

		weekly := worktime.WeeklyTotal(recs, day, s.weekStart)
		monthly := worktime.MonthlyTotal(recs, day)
		row.WeeklyMinutes = weekly.TotalMinutes
		row.WeeklyHours = worktime.FormatPeriod(weekly.TotalMinutes)
		row.MonthlyMinutes = monthly.TotalMinutes
		row.MonthlyHours = worktime.FormatPeriod(monthly.TotalMinutes)

		if row.Status == string(worktime.StatusAbsent) {
			resp.Absent++
		} else {
			resp.Present++
		}
		resp.Rows = append(resp.Rows, row)
	}

	// Earliest check-in first; workers without one follow, by name.
	sort.SliceStable(resp.Rows, func(i, j int) bool {
		a, aok := checkIns[resp.Rows[i].WorkerID]
		b, bok := checkIns[resp.Rows[j].WorkerID]
		switch {
		case aok && bok && !a.Equal(b):
			return a.Before(b)
		case aok != bok:
			return aok
		default:
			return resp.Rows[i].WorkerName < resp.Rows[j].WorkerName
		}
	})

	return resp, nil
}

// WorkerReport implements report.ReportService.
func (s *ReportServiceImpl) WorkerReport(ctx context.Context, workerID string) (report.WorkerReport, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return report.WorkerReport{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, workerID, userID)
	if err != nil {
		return report.WorkerReport{}, err
	}

	var (
		records  []attendance.Attendance
		finances []finance.Finance
		paid     int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListRecentByWorker(gCtx, w.ID, report.RecentLimit)
		return err
	})

	g.Go(func() error {
		var err error
		finances, err = s.FinanceRepository.ListRecentByWorker(gCtx, w.ID, report.RecentLimit)
		return err
	})

	g.Go(func() error {
		var err error
		paid, err = s.FinanceRepository.SumByWorker(gCtx, w.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.WorkerReport{}, fmt.Errorf("failed to load worker report: %w", err)
	}

	resp := report.WorkerReport{
		Worker:            worker.ToResponse(w),
		TotalPaid:         paid,
		RecentAttendances: make([]attendance.AttendanceResponse, 0, len(records)),
		RecentFinances:    make([]finance.FinanceResponse, 0, len(finances)),
	}
	for _, a := range records {
		a = a.In(s.loc)
		a.WorkerName = &w.Name
		resp.RecentAttendances = append(resp.RecentAttendances,
			attendance.NewAttendanceResponse(a, s.calc.DaySummary(a.Record()), s.loc))
	}
	for _, f := range finances {
		f.WorkerName = &w.Name
		resp.RecentFinances = append(resp.RecentFinances, finance.ToResponse(f, s.loc))
	}

	return resp, nil
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	ref, err := s.resolveMonth(req.Month)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.WorkerID, userID)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	monthStart, monthEnd := worktime.MonthBounds(ref)
	// Attendance dates are DATE columns; finance rows are bucketed by local creation time.
	dateFrom := worktime.DateIn(monthStart, s.loc)
	dateTo := worktime.DateIn(monthEnd, s.loc)

	var (
		records  []attendance.Attendance
		finances []finance.Finance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByWorkerAndRange(gCtx, w.ID, dateFrom, dateTo)
		return err
	})

	g.Go(func() error {
		var err error
		finances, err = s.FinanceRepository.ListByWorkerAndRange(gCtx, w.ID, monthStart, monthStart.AddDate(0, 1, 0))
		return err
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to load monthly data: %w", err)
	}

	rows := worktime.MonthlyReport(attendance.Records(records), finance.LedgerEntries(finances), ref)

	resp := report.MonthlyReport{
		Worker:      worker.ToResponse(w),
		Month:       ref.Format("2006-01"),
		PeriodStart: monthStart.Format(time.DateOnly),
		PeriodEnd:   monthEnd.Format(time.DateOnly),
		Rows:        make([]report.MonthlyRow, 0, len(rows)),
	}
	for _, r := range rows {
		resp.TotalMinutes += r.Minutes
		resp.TotalFinance += r.FinanceTotal
		resp.Rows = append(resp.Rows, report.MonthlyRow{
			Date:         r.Date.Format(time.DateOnly),
			Weekday:      r.Date.Weekday().String(),
			Minutes:      r.Minutes,
			Hours:        worktime.FormatDaily(r.Minutes),
			FinanceTotal: r.FinanceTotal,
		})
	}
	resp.TotalHours = worktime.FormatPeriod(resp.TotalMinutes)

	return resp, nil
}

// ExportMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.ExportFile, error) {
	monthly, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := export.MonthlyReportXLSX(monthly)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to render monthly report: %w", err)
	}

	return report.ExportFile{
		Filename:    fmt.Sprintf("monthly-%s-%s.xlsx", fileSafe(monthly.Worker.Name), monthly.Month),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

// resolveMonth returns the first day of the requested month in the
// attendance timezone, defaulting to the current month.
func (s *ReportServiceImpl) resolveMonth(month *string) (time.Time, error) {
	if month == nil || *month == "" {
		y, m, _ := s.now().In(s.loc).Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, s.loc), nil
	}
	t, err := time.ParseInLocation("2006-01", *month, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", report.ErrInvalidPeriod, err)
	}
	return t, nil
}

func fileSafe(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return -1
		case ' ':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "worker"
	}
	return name
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
