package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/handler/http/response"
)

type FinanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	financeService finance.FinanceService
}

func NewFinanceHandler(financeService finance.FinanceService) FinanceHandler {
	return &financeHandlerImpl{financeService: financeService}
}

// Create implements FinanceHandler.
func (h *financeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateFinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.financeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create finance error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Finance recorded successfully", created)
}

// List implements FinanceHandler.
func (h *financeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter finance.FinanceFilter
	query := r.URL.Query()

	if date := query.Get("date"); date != "" {
		filter.Date = &date
	}
	if workerID := query.Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	if p := query.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			response.BadRequest(w, "Invalid page parameter", nil)
			return
		}
		filter.Page = page
	}
	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "Invalid limit parameter", nil)
			return
		}
		filter.Limit = limit
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.financeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
		Showing:    list.Showing,
	})
}
