package shift

import "context"

type Service interface {
	// Admin operations. Never blocked by the SELF_ASSIGNED lock.
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	BatchAssign(ctx context.Context, req BatchAssignRequest) (BatchAssignResponse, error)

	// Worker operations.
	SelfAssign(ctx context.Context, shiftID string) (ShiftResponse, error)
	SelfUnassign(ctx context.Context, shiftID string) (ShiftResponse, error)

	// Reads.
	Get(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context, filter Filter) ([]ShiftResponse, error)
}
