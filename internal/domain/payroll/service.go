package payroll

import "context"

type Service interface {
	GenerateStatements(ctx context.Context, req GenerateStatementsRequest) (StatementsResponse, error)

	// Rate table administration.
	UpsertRates(ctx context.Context, req UpsertRatesRequest) ([]RateResponse, error)
	GetRates(ctx context.Context) ([]RateResponse, error)

	// Discount administration.
	CreateDiscount(ctx context.Context, req CreateDiscountRequest) (DiscountResponse, error)
	GetActiveDiscount(ctx context.Context) (DiscountResponse, error)

	// External hours administration.
	CreateExternalHours(ctx context.Context, req CreateExternalHoursRequest) (ExternalHoursResponse, error)
	ListExternalHours(ctx context.Context, from, to string, workerID *string) ([]ExternalHoursResponse, error)
	DeleteExternalHours(ctx context.Context, id string) error
}
