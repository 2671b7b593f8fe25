package shift

import "time"

type Shift struct {
	ID               string
	StartTime        time.Time
	EndTime          time.Time
	Type             ShiftType
	DayCategory      DayCategory
	SelfAssignable   bool
	AssignmentStatus AssignmentStatus
	RequiredDoctors  int
	IsAvailable      bool
	WorkerID         *string // legacy single-worker reference
	HolidayID        *string // set on shifts generated from a holiday
	Note             string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Assignments []Assignment
}

// AssignedCount returns the number of workers currently holding the shift.
func (s Shift) AssignedCount() int {
	return len(s.Assignments)
}

// SlotsAvailable returns how many slots remain open.
func (s Shift) SlotsAvailable() int {
	n := s.RequiredDoctors - len(s.Assignments)
	if n < 0 {
		return 0
	}
	return n
}

// HasWorker reports whether the worker already holds an assignment on the shift.
func (s Shift) HasWorker(workerID string) bool {
	for _, a := range s.Assignments {
		if a.WorkerID == workerID {
			return true
		}
	}
	return false
}

type Assignment struct {
	ID             string
	ShiftID        string
	WorkerID       string
	IsSelfAssigned bool
	AssignedAt     time.Time
	AssignedBy     *string // admin who performed the assignment, nil on self-assign
}

type ShiftType string

const (
	ShiftTypeFixed    ShiftType = "FIXED"
	ShiftTypeRotating ShiftType = "ROTATING"
)

var ShiftTypeValues = []string{
	string(ShiftTypeFixed),
	string(ShiftTypeRotating),
}

type DayCategory string

const (
	DayCategoryWeekday DayCategory = "WEEKDAY"
	DayCategoryWeekend DayCategory = "WEEKEND"
	DayCategoryHoliday DayCategory = "HOLIDAY"
)

var DayCategoryValues = []string{
	string(DayCategoryWeekday),
	string(DayCategoryWeekend),
	string(DayCategoryHoliday),
}

type AssignmentStatus string

const (
	StatusAvailable     AssignmentStatus = "AVAILABLE"
	StatusSelfAssigned  AssignmentStatus = "SELF_ASSIGNED"
	StatusAdminAssigned AssignmentStatus = "ADMIN_ASSIGNED"
)

var AssignmentStatusValues = []string{
	string(StatusAvailable),
	string(StatusSelfAssigned),
	string(StatusAdminAssigned),
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
