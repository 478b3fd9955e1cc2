package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `id, user_id, name, code, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Code, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return worker.Worker{}, fmt.Errorf("generate worker id: %w", err)
	}

	query := `
		INSERT INTO workers (id, user_id, name, code)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + workerColumns

	created, err := scanWorker(q.QueryRow(ctx, query, id.String(), w.UserID, w.Name, w.Code))
	if err != nil {
		if isUniqueViolation(err) {
			return worker.Worker{}, worker.ErrWorkerCodeExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id, userID string) (worker.Worker, error) {
	return r.get(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1 AND user_id = $2`, id, userID)
}

// LockByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) LockByID(ctx context.Context, id, userID string) (worker.Worker, error) {
	return r.get(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID)
}

func (r *workerRepositoryImpl) get(ctx context.Context, query string, args ...any) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanWorker(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return found, nil
}

// ListByUser implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+workerColumns+` FROM workers WHERE user_id = $1 ORDER BY name ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET name = $1, code = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + workerColumns

	updated, err := scanWorker(q.QueryRow(ctx, query, w.Name, w.Code, w.ID, w.UserID))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return worker.Worker{}, worker.ErrWorkerNotFound
		case isUniqueViolation(err):
			return worker.Worker{}, worker.ErrWorkerCodeExists
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return updated, nil
}

// Delete implements worker.WorkerRepository. Attendance and finance rows
// cascade with the worker.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}
