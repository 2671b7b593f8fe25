package holiday

import "context"

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (SyncResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (SyncResponse, error)
	Delete(ctx context.Context, id string) (DeleteResponse, error)
	Get(ctx context.Context, id string) (HolidayResponse, error)
	List(ctx context.Context) ([]HolidayResponse, error)
}
