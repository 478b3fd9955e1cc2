package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type financeRepository struct {
	db *database.DB
}

func NewFinanceRepository(db *database.DB) finance.FinanceRepository {
	return &financeRepository{db: db}
}

const financeColumns = `f.id, f.worker_id, f.description, f.amount, f.created_at, f.updated_at, w.name`

const financeFrom = ` FROM finances f JOIN workers w ON w.id = f.worker_id `

func scanFinance(row pgx.Row) (finance.Finance, error) {
	var f finance.Finance
	err := row.Scan(&f.ID, &f.WorkerID, &f.Description, &f.Amount, &f.CreatedAt, &f.UpdatedAt, &f.WorkerName)
	return f, err
}

func collectFinances(rows pgx.Rows) ([]finance.Finance, error) {
	defer rows.Close()

	result := make([]finance.Finance, 0)
	for rows.Next() {
		f, err := scanFinance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finance: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// Create implements finance.FinanceRepository.
func (r *financeRepository) Create(ctx context.Context, f finance.Finance) (finance.Finance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return finance.Finance{}, fmt.Errorf("generate finance id: %w", err)
	}

	query := `
		INSERT INTO finances (id, worker_id, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, id.String(), f.WorkerID, f.Description, f.Amount).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return finance.Finance{}, fmt.Errorf("failed to create finance: %w", err)
	}
	return f, nil
}

// List implements finance.FinanceRepository.
func (r *financeRepository) List(ctx context.Context, userID string, filter finance.FinanceFilter, from, to time.Time) ([]finance.Finance, int64, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE w.user_id = $1 AND f.created_at >= $2 AND f.created_at < $3`
	args := []any{userID, from, to}
	if filter.WorkerID != nil {
		args = append(args, *filter.WorkerID)
		where += fmt.Sprintf(" AND f.worker_id = $%d", len(args))
	}

	var count, total int64
	countQuery := `SELECT COUNT(*), COALESCE(SUM(f.amount), 0)` + financeFrom + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&count, &total); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count finances: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	listQuery := `SELECT ` + financeColumns + financeFrom + where +
		fmt.Sprintf(" ORDER BY f.created_at DESC, f.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list finances: %w", err)
	}
	finances, err := collectFinances(rows)
	if err != nil {
		return nil, 0, 0, err
	}
	return finances, count, total, nil
}

// ListByWorkerAndRange implements finance.FinanceRepository.
func (r *financeRepository) ListByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time) ([]finance.Finance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + financeColumns + financeFrom + `
		WHERE f.worker_id = $1 AND f.created_at >= $2 AND f.created_at < $3
		ORDER BY f.created_at ASC`

	rows, err := q.Query(ctx, query, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker finances: %w", err)
	}
	return collectFinances(rows)
}

// ListRecentByWorker implements finance.FinanceRepository.
func (r *financeRepository) ListRecentByWorker(ctx context.Context, workerID string, limit int) ([]finance.Finance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + financeColumns + financeFrom + `
		WHERE f.worker_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2`

	rows, err := q.Query(ctx, query, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent finances: %w", err)
	}
	return collectFinances(rows)
}

// SumByWorker implements finance.FinanceRepository.
func (r *financeRepository) SumByWorker(ctx context.Context, workerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM finances WHERE worker_id = $1`, workerID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum finances: %w", err)
	}
	return total, nil
}
