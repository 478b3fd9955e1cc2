package finance

import (
	"context"
	"time"
)

type FinanceRepository interface {
	Create(ctx context.Context, f Finance) (Finance, error)

	// List returns one page of the user's transactions created in [from, to),
	// the total row count and the summed amount over all pages.
	List(ctx context.Context, userID string, filter FinanceFilter, from, to time.Time) ([]Finance, int64, int64, error)

	// ListByWorkerAndRange returns transactions created in [from, to).
	ListByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time) ([]Finance, error)
	ListRecentByWorker(ctx context.Context, workerID string, limit int) ([]Finance, error)
	SumByWorker(ctx context.Context, workerID string) (int64, error)
}
