package holiday

import "errors"

var (
	ErrHolidayNotFound    = errors.New("holiday not found")
	ErrHolidayDateTaken   = errors.New("a holiday already exists on this date")
	ErrInvalidRequestData = errors.New("invalid request data")
)
