package holiday

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	GetAll(ctx context.Context) ([]Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// AnyOnDate reports whether any holiday other than excludeID still covers
	// the date, either exactly or through month-day recurrence.
	AnyOnDate(ctx context.Context, date time.Time, excludeID *string) (bool, error)
}
