package http

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/alefshop/attendance-backend/internal/domain/report"
	"github.com/alefshop/attendance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	DailyAttendance(w http.ResponseWriter, r *http.Request)
	WorkerReport(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// DailyAttendance implements ReportHandler.
func (h *reportHandlerImpl) DailyAttendance(w http.ResponseWriter, r *http.Request) {
	var req report.DailyAttendanceRequest
	if date := r.URL.Query().Get("date"); date != "" {
		req.Date = &date
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.reportService.DailyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// WorkerReport implements ReportHandler.
func (h *reportHandlerImpl) WorkerReport(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.reportService.WorkerReport(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func monthlyRequest(r *http.Request) report.MonthlyReportRequest {
	req := report.MonthlyReportRequest{WorkerID: chi.URLParam(r, "id")}
	if month := r.URL.Query().Get("month"); month != "" {
		req.Month = &month
	}
	return req
}

// MonthlyReport implements ReportHandler.
func (h *reportHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := monthlyRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.reportService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportMonthlyReport implements ReportHandler.
func (h *reportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := monthlyRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Error("Failed to write export", "error", err)
	}
}
