package report

import (
	"context"
	"testing"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/domain/report"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/export"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tehran = time.FixedZone("IRST", 3*60*60+30*60)

type fakeWorkerRepo struct {
	worker.WorkerRepository
	workers []worker.Worker
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id, userID string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id && w.UserID == userID {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ListByUser(_ context.Context, userID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) owner(workerID string) string {
	for _, w := range f.workers {
		if w.ID == workerID {
			return w.UserID
		}
	}
	return ""
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
	workers *fakeWorkerRepo
}

func inDates(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func (f *fakeAttendanceRepo) ListByUserAndRange(_ context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if f.workers.owner(r.WorkerID) == userID && inDates(r.Date, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByWorkerAndRange(_ context.Context, workerID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.WorkerID == workerID && inDates(r.Date, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListRecentByWorker(_ context.Context, workerID string, limit int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.WorkerID == workerID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeFinanceRepo struct {
	finance.FinanceRepository
	rows []finance.Finance
}

func (f *fakeFinanceRepo) ListByWorkerAndRange(_ context.Context, workerID string, from, to time.Time) ([]finance.Finance, error) {
	var out []finance.Finance
	for _, r := range f.rows {
		if r.WorkerID == workerID && !r.CreatedAt.Before(from) && r.CreatedAt.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) ListRecentByWorker(_ context.Context, workerID string, limit int) ([]finance.Finance, error) {
	var out []finance.Finance
	for _, r := range f.rows {
		if r.WorkerID == workerID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) SumByWorker(_ context.Context, workerID string) (int64, error) {
	var total int64
	for _, r := range f.rows {
		if r.WorkerID == workerID {
			total += r.Amount
		}
	}
	return total, nil
}

func userCtx(t *testing.T, userID string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set(jwt.ClaimUserID, userID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fixture struct {
	svc        *ReportServiceImpl
	workers    *fakeWorkerRepo
	attendance *fakeAttendanceRepo
	finance    *fakeFinanceRepo
	ali        worker.Worker
	bahar      worker.Worker
	cyrus      worker.Worker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ali:   worker.Worker{ID: uuid.NewString(), UserID: "owner-1", Name: "Ali"},
		bahar: worker.Worker{ID: uuid.NewString(), UserID: "owner-1", Name: "Bahar"},
		cyrus: worker.Worker{ID: uuid.NewString(), UserID: "owner-1", Name: "Cyrus"},
	}
	// Listed out of order; the report sorts.
	f.workers = &fakeWorkerRepo{workers: []worker.Worker{f.cyrus, f.ali, f.bahar}}
	f.attendance = &fakeAttendanceRepo{workers: f.workers}
	f.finance = &fakeFinanceRepo{}

	f.svc = NewReportService(f.attendance, f.finance, f.workers, tehran,
		worktime.DefaultExpectedStart, time.Monday).(*ReportServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2025, 6, 11, 12, 0, 0, 0, tehran) }
	return f
}

// add stores a record the way pgx hands it back: DATE at UTC midnight and
// timestamps in UTC.
func (f *fixture) add(w worker.Worker, month time.Month, day, inH, inM, outH, outM int) {
	date := time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, month, day, inH, inM, 0, 0, tehran).UTC()
	rec := attendance.Attendance{ID: uuid.NewString(), WorkerID: w.ID, Date: date, CheckIn: &in}
	if outH >= 0 {
		out := time.Date(2025, month, day, outH, outM, 0, 0, tehran).UTC()
		rec.CheckOut = &out
	}
	f.attendance.records = append(f.attendance.records, rec)
}

func (f *fixture) pay(w worker.Worker, at time.Time, amount int64) {
	f.finance.rows = append(f.finance.rows, finance.Finance{
		ID: uuid.NewString(), WorkerID: w.ID, Description: "pay", Amount: amount, CreatedAt: at,
	})
}

func TestReportService_DailyAttendance(t *testing.T) {
	f := newFixture(t)
	f.add(f.ali, time.June, 11, 9, 20, 17, 20)
	f.add(f.ali, time.June, 9, 9, 0, 17, 0)
	f.add(f.ali, time.June, 2, 9, 0, 13, 0)
	f.add(f.bahar, time.June, 11, 8, 30, -1, 0)

	resp, err := f.svc.DailyAttendance(userCtx(t, "owner-1"), report.DailyAttendanceRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-11", resp.Date)
	assert.Equal(t, "09:00", resp.ExpectedStart)
	assert.Equal(t, "2025-06-09", resp.WeekStart)
	assert.Equal(t, "2025-06-15", resp.WeekEnd)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Present)
	assert.Equal(t, 1, resp.Absent)

	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "Bahar", resp.Rows[0].WorkerName)
	assert.Equal(t, "Ali", resp.Rows[1].WorkerName)
	assert.Equal(t, "Cyrus", resp.Rows[2].WorkerName)

	bahar := resp.Rows[0]
	assert.Equal(t, "working", bahar.Status)
	assert.Equal(t, "-", bahar.WorkHours)
	assert.False(t, bahar.IsLate)
	assert.Equal(t, "2025-06-11T08:30:00+03:30", *bahar.CheckIn)

	ali := resp.Rows[1]
	assert.Equal(t, "present", ali.Status)
	assert.Equal(t, "08:00", ali.WorkHours)
	assert.Equal(t, 480, ali.TotalMinutes)
	assert.True(t, ali.IsLate)
	assert.Equal(t, 20, ali.LateMinutes)
	assert.Equal(t, 960, ali.WeeklyMinutes)
	assert.Equal(t, "16:00", ali.WeeklyHours)
	assert.Equal(t, 1200, ali.MonthlyMinutes)
	assert.Equal(t, "20:00", ali.MonthlyHours)

	cyrus := resp.Rows[2]
	assert.Equal(t, "absent", cyrus.Status)
	assert.Nil(t, cyrus.CheckIn)
	assert.Equal(t, "0:00", cyrus.WeeklyHours)
}

func TestReportService_DailyAttendance_WeekCrossesMonth(t *testing.T) {
	f := newFixture(t)
	f.add(f.ali, time.June, 30, 9, 0, 17, 0)
	f.add(f.ali, time.July, 1, 9, 0, 12, 0)

	date := "2025-07-01"
	resp, err := f.svc.DailyAttendance(userCtx(t, "owner-1"), report.DailyAttendanceRequest{Date: &date})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-30", resp.WeekStart)
	require.NotEmpty(t, resp.Rows)
	ali := resp.Rows[0]
	assert.Equal(t, "Ali", ali.WorkerName)
	assert.Equal(t, 660, ali.WeeklyMinutes)
	assert.Equal(t, 180, ali.MonthlyMinutes)
}

func TestReportService_DailyAttendance_InvalidDate(t *testing.T) {
	f := newFixture(t)
	date := "11/06/2025"
	_, err := f.svc.DailyAttendance(userCtx(t, "owner-1"), report.DailyAttendanceRequest{Date: &date})
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)
}

func TestReportService_WorkerReport(t *testing.T) {
	f := newFixture(t)
	f.add(f.ali, time.June, 11, 9, 5, 17, 0)
	f.add(f.bahar, time.June, 11, 9, 0, 17, 0)
	f.pay(f.ali, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), 1000)
	f.pay(f.ali, time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC), 250)
	f.pay(f.bahar, time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC), 999)

	resp, err := f.svc.WorkerReport(userCtx(t, "owner-1"), f.ali.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ali", resp.Worker.Name)
	assert.Equal(t, int64(1250), resp.TotalPaid)
	require.Len(t, resp.RecentAttendances, 1)
	assert.Equal(t, 5, resp.RecentAttendances[0].LateMinutes)
	assert.Equal(t, "Ali", *resp.RecentAttendances[0].WorkerName)
	assert.Len(t, resp.RecentFinances, 2)

	_, err = f.svc.WorkerReport(userCtx(t, "owner-2"), f.ali.ID)
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestReportService_MonthlyReport(t *testing.T) {
	f := newFixture(t)
	f.add(f.ali, time.June, 3, 9, 0, 13, 0)
	f.add(f.ali, time.June, 4, 9, 0, 17, 30)
	f.add(f.ali, time.June, 5, 9, 0, -1, 0)
	f.add(f.ali, time.May, 31, 9, 0, 17, 0)
	// 00:15 on June 1st in Tehran.
	f.pay(f.ali, time.Date(2025, 5, 31, 20, 45, 0, 0, time.UTC), 300)
	f.pay(f.ali, time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC), 1000)
	// 00:30 on July 1st in Tehran.
	f.pay(f.ali, time.Date(2025, 6, 30, 21, 0, 0, 0, time.UTC), 5000)

	month := "2025-06"
	resp, err := f.svc.MonthlyReport(userCtx(t, "owner-1"), report.MonthlyReportRequest{WorkerID: f.ali.ID, Month: &month})
	require.NoError(t, err)

	assert.Equal(t, "2025-06", resp.Month)
	assert.Equal(t, "2025-06-01", resp.PeriodStart)
	assert.Equal(t, "2025-06-30", resp.PeriodEnd)
	require.Len(t, resp.Rows, 30)

	assert.Equal(t, int64(300), resp.Rows[0].FinanceTotal)
	assert.Equal(t, "Sunday", resp.Rows[0].Weekday)
	assert.Equal(t, 240, resp.Rows[2].Minutes)
	assert.Equal(t, "04:00", resp.Rows[2].Hours)
	assert.Equal(t, int64(1000), resp.Rows[2].FinanceTotal)
	assert.Equal(t, 510, resp.Rows[3].Minutes)
	assert.Zero(t, resp.Rows[4].Minutes, "open record counts nothing")

	assert.Equal(t, 750, resp.TotalMinutes)
	assert.Equal(t, "12:30", resp.TotalHours)
	assert.Equal(t, int64(1300), resp.TotalFinance)
}

func TestReportService_MonthlyReport_DefaultsAndErrors(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx(t, "owner-1")

	resp, err := f.svc.MonthlyReport(ctx, report.MonthlyReportRequest{WorkerID: f.ali.ID})
	require.NoError(t, err)
	assert.Equal(t, "2025-06", resp.Month)
	assert.Zero(t, resp.TotalMinutes)

	bad := "2025-13"
	_, err = f.svc.MonthlyReport(ctx, report.MonthlyReportRequest{WorkerID: f.ali.ID, Month: &bad})
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)

	_, err = f.svc.MonthlyReport(userCtx(t, "owner-2"), report.MonthlyReportRequest{WorkerID: f.ali.ID})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestReportService_ExportMonthlyReport(t *testing.T) {
	f := newFixture(t)
	f.add(f.ali, time.June, 3, 9, 0, 17, 0)

	month := "2025-06"
	file, err := f.svc.ExportMonthlyReport(userCtx(t, "owner-1"), report.MonthlyReportRequest{WorkerID: f.ali.ID, Month: &month})
	require.NoError(t, err)

	assert.Equal(t, "monthly-Ali-2025-06.xlsx", file.Filename)
	assert.Equal(t, export.XLSXContentType, file.ContentType)
	assert.NotEmpty(t, file.Content)
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "Ali-Rezaei", fileSafe(" Ali Rezaei "))
	assert.Equal(t, "ab", fileSafe("a/b"))
	assert.Equal(t, "worker", fileSafe("  "))
}
