package worker

import "context"

type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	List(ctx context.Context) ([]WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, id string) error
}
