package shift

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	// GetByIDForUpdate locks the shift row for the duration of the enclosing
	// transaction. Used by the self-assignment check-then-insert sequence.
	GetByIDForUpdate(ctx context.Context, id string) (Shift, error)
	GetByHolidayID(ctx context.Context, holidayID string) (Shift, error)
	List(ctx context.Context, filter Filter) ([]Shift, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	UpdateAssignmentState(ctx context.Context, id string, status AssignmentStatus, selfAssignable, isAvailable bool) error
	// ReclassifyOnDate rewrites the day category of every shift starting on the
	// given calendar date whose category is `from`. Returns the number touched.
	ReclassifyOnDate(ctx context.Context, date time.Time, from, to DayCategory) (int64, error)
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	ListByShiftID(ctx context.Context, shiftID string) ([]Assignment, error)
	CountByShiftID(ctx context.Context, shiftID string) (int, error)
	Delete(ctx context.Context, shiftID, workerID string) error
	DeleteByShiftID(ctx context.Context, shiftID string) error
	// HasOverlapping reports whether the worker holds any assignment whose shift
	// interval intersects [start, end). excludeShiftID skips the shift being
	// updated.
	HasOverlapping(ctx context.Context, workerID string, start, end time.Time, excludeShiftID *string) (bool, error)
}
