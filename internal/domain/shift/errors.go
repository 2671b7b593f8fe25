package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrAssignmentNotFound = errors.New("shift assignment not found")

	// Conflict class: reported to the caller, never silently retried.
	ErrOverlappingAssignment = errors.New("worker already has an overlapping shift")
	ErrShiftFull             = errors.New("shift has no open slots")
	ErrWorkerAlreadyAssigned = errors.New("worker already assigned to this shift")
	ErrShiftLocked           = errors.New("shift is locked by completed self-assignment")

	// Self-assignment preconditions.
	ErrNotSelfAssignable  = errors.New("shift is not open for self-assignment")
	ErrNotRotatingShift   = errors.New("only rotating shifts can be self-assigned")
	ErrWeekdaySelfAssign  = errors.New("weekday shifts cannot be self-assigned")
	ErrInvalidRequestData = errors.New("invalid request data")
)
