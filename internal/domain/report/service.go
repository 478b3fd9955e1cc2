package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// DailyAttendance lists every worker with the day's record and running totals.
	DailyAttendance(ctx context.Context, req DailyAttendanceRequest) (DailyAttendanceReport, error)

	// WorkerReport summarizes recent attendance and payments of one worker.
	WorkerReport(ctx context.Context, workerID string) (WorkerReport, error)

	// MonthlyReport returns one row per day of the month.
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// ExportMonthlyReport renders MonthlyReport as an XLSX workbook.
	ExportMonthlyReport(ctx context.Context, req MonthlyReportRequest) (ExportFile, error)
}
