package payroll

import "errors"

var (
	ErrNoRatesConfigured     = errors.New("no hourly rates configured")
	ErrDiscountNotFound      = errors.New("no active discount found")
	ErrExternalHoursNotFound = errors.New("external hours entry not found")
	ErrInvalidRequestData    = errors.New("invalid request data")
)
