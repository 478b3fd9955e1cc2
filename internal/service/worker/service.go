package worker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
}

func NewWorkerService(workerRepository worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{WorkerRepository: workerRepository}
}

// normalizeCode turns a blank code into no code.
func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	created, err := s.WorkerRepository.Create(ctx, worker.Worker{
		UserID: userID,
		Name:   req.Name,
		Code:   normalizeCode(req.Code),
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	slog.Info("worker created", "worker_id", created.ID, "user_id", userID)
	return worker.ToResponse(created), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context) ([]worker.WorkerResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	workers, err := s.WorkerRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		resp = append(resp, worker.ToResponse(w))
	}
	return resp, nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	found, err := s.WorkerRepository.GetByID(ctx, id, userID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(found), nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	existing, err := s.WorkerRepository.GetByID(ctx, req.ID, userID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Code != nil {
		existing.Code = normalizeCode(req.Code)
	}

	updated, err := s.WorkerRepository.Update(ctx, existing)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(updated), nil
}

// Delete implements worker.WorkerService.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.WorkerRepository.Delete(ctx, id, userID); err != nil {
		return err
	}

	slog.Info("worker deleted", "worker_id", id, "user_id", userID)
	return nil
}
