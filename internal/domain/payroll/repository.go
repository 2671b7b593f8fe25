package payroll

import (
	"context"
	"time"
)

type RateRepository interface {
	Upsert(ctx context.Context, rates []HourlyRate) ([]HourlyRate, error)
	GetAll(ctx context.Context) ([]HourlyRate, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, d Discount) (Discount, error)
	// GetActive returns the active discount with the most recent effective
	// date, or ErrDiscountNotFound when none is configured.
	GetActive(ctx context.Context) (Discount, error)
	List(ctx context.Context) ([]Discount, error)
}

type ExternalHoursRepository interface {
	Create(ctx context.Context, e ExternalHours) (ExternalHours, error)
	ListBetween(ctx context.Context, from, to time.Time, workerID *string) ([]ExternalHours, error)
	Delete(ctx context.Context, id string) error
}
