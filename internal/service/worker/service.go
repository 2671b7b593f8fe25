package worker

import (
	"context"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/worker"
)

type workerServiceImpl struct {
	workerRepo worker.Repository
}

func NewWorkerService(workerRepo worker.Repository) worker.Service {
	return &workerServiceImpl{workerRepo: workerRepo}
}

// Create implements worker.Service.
func (s *workerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	created, err := s.workerRepo.Create(ctx, worker.Worker{
		Name:        req.Name,
		Role:        req.Role,
		IsActive:    true,
		HasDiscount: req.HasDiscount,
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return mapWorkerToResponse(created), nil
}

// Update implements worker.Service.
func (s *workerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	w.Name = req.Name
	w.Role = req.Role
	w.IsActive = req.IsActive
	w.HasDiscount = req.HasDiscount
	updated, err := s.workerRepo.Update(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return mapWorkerToResponse(updated), nil
}

// Get implements worker.Service.
func (s *workerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return mapWorkerToResponse(w), nil
}

// List implements worker.Service.
func (s *workerServiceImpl) List(ctx context.Context, activeOnly bool) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, mapWorkerToResponse(w))
	}

	return responses, nil
}

func mapWorkerToResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:          w.ID,
		Name:        w.Name,
		Role:        w.Role,
		IsActive:    w.IsActive,
		HasDiscount: w.HasDiscount,
		CreatedAt:   w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   w.UpdatedAt.Format(time.RFC3339),
	}
}
