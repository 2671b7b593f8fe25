package worker

import "context"

type Service interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	List(ctx context.Context, activeOnly bool) ([]WorkerResponse, error)
}
