package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/handler/http/response"
	"github.com/alefshop/attendance-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &workerHandlerImpl{workerService: workerService}
}

// idParam reads and checks the {id} route parameter.
func idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid ID format", map[string]string{"id": "id must be a valid UUID"})
		return "", false
	}
	return id, true
}

// Create implements WorkerHandler.
func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.workerService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create worker error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", created)
}

// List implements WorkerHandler.
func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workers)
}

// Get implements WorkerHandler.
func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	found, err := h.workerService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements WorkerHandler.
func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.workerService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", updated)
}

// Delete implements WorkerHandler.
func (h *workerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.workerService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted successfully", nil)
}
