package worker

import "context"

// WorkerRepository scopes every lookup by the owning user, so a foreign
// worker is indistinguishable from a missing one.
type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id, userID string) (Worker, error)
	ListByUser(ctx context.Context, userID string) ([]Worker, error)
	Update(ctx context.Context, w Worker) (Worker, error)
	Delete(ctx context.Context, id, userID string) error

	// LockByID is GetByID with SELECT ... FOR UPDATE; it must run inside a transaction.
	LockByID(ctx context.Context, id, userID string) (Worker, error)
}
