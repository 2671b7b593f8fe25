package response

import (
	"errors"
	"net/http"

	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/domain/worker"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, shift.ErrOverlappingAssignment):
		Conflict(w, "Worker already has an overlapping shift")
	case errors.Is(err, shift.ErrShiftFull):
		Conflict(w, "Shift has no remaining slots")
	case errors.Is(err, shift.ErrWorkerAlreadyAssigned):
		Conflict(w, "Worker already assigned to this shift")
	case errors.Is(err, shift.ErrShiftLocked):
		Conflict(w, "Shift is locked for self-assignment")
	case errors.Is(err, shift.ErrNotSelfAssignable):
		BadRequest(w, "Shift is not open for self-assignment", nil)
	case errors.Is(err, shift.ErrNotRotatingShift):
		BadRequest(w, "Only rotating shifts can be self-assigned", nil)
	case errors.Is(err, shift.ErrWeekdaySelfAssign):
		BadRequest(w, "Weekday shifts cannot be self-assigned", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateTaken):
		Conflict(w, "A holiday already exists on that date")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerInactive):
		BadRequest(w, "Worker is inactive", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoRatesConfigured):
		BadRequest(w, "No hourly rates configured", nil)
	case errors.Is(err, payroll.ErrDiscountNotFound):
		NotFound(w, "No active discount found")
	case errors.Is(err, payroll.ErrExternalHoursNotFound):
		NotFound(w, "External hours entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
