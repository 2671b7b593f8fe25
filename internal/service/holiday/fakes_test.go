package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
)

// memStore backs the shift and assignment repositories for these tests.
type memStore struct {
	shifts      map[string]shift.Shift
	assignments map[string][]shift.Assignment
	seq         int
}

func newMemStore() *memStore {
	return &memStore{
		shifts:      make(map[string]shift.Shift),
		assignments: make(map[string][]shift.Assignment),
	}
}

func (m *memStore) withAssignments(sh shift.Shift) shift.Shift {
	sh.Assignments = append([]shift.Assignment(nil), m.assignments[sh.ID]...)
	return sh
}

func (m *memStore) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	m.seq++
	s.ID = fmt.Sprintf("shift-%d", m.seq)
	m.shifts[s.ID] = s
	return m.withAssignments(s), nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return m.withAssignments(s), nil
}

func (m *memStore) GetByIDForUpdate(ctx context.Context, id string) (shift.Shift, error) {
	return m.GetByID(ctx, id)
}

func (m *memStore) GetByHolidayID(ctx context.Context, holidayID string) (shift.Shift, error) {
	for _, s := range m.shifts {
		if s.HolidayID != nil && *s.HolidayID == holidayID {
			return m.withAssignments(s), nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (m *memStore) List(ctx context.Context, filter shift.Filter) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range m.shifts {
		out = append(out, m.withAssignments(s))
	}
	return out, nil
}

func (m *memStore) ListBetween(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range m.shifts {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, m.withAssignments(s))
		}
	}
	return out, nil
}

func (m *memStore) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if _, ok := m.shifts[s.ID]; !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	s.Assignments = nil
	m.shifts[s.ID] = s
	return m.withAssignments(s), nil
}

func (m *memStore) UpdateAssignmentState(ctx context.Context, id string, status shift.AssignmentStatus, selfAssignable, isAvailable bool) error {
	s, ok := m.shifts[id]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.AssignmentStatus = status
	s.SelfAssignable = selfAssignable
	s.IsAvailable = isAvailable
	m.shifts[id] = s
	return nil
}

func (m *memStore) ReclassifyOnDate(ctx context.Context, date time.Time, from, to shift.DayCategory) (int64, error) {
	var n int64
	for id, s := range m.shifts {
		st := s.StartTime
		if st.Year() == date.Year() && st.Month() == date.Month() && st.Day() == date.Day() && s.DayCategory == from {
			s.DayCategory = to
			m.shifts[id] = s
			n++
		}
	}
	return n, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(m.shifts, id)
	return nil
}

// shift.AssignmentRepository

func (m *memStore) CreateAssignment(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	m.seq++
	a.ID = fmt.Sprintf("assignment-%d", m.seq)
	m.assignments[a.ShiftID] = append(m.assignments[a.ShiftID], a)
	return a, nil
}

func (m *memStore) ListByShiftID(ctx context.Context, shiftID string) ([]shift.Assignment, error) {
	return append([]shift.Assignment(nil), m.assignments[shiftID]...), nil
}

func (m *memStore) CountByShiftID(ctx context.Context, shiftID string) (int, error) {
	return len(m.assignments[shiftID]), nil
}

func (m *memStore) DeleteAssignment(ctx context.Context, shiftID, workerID string) error {
	list := m.assignments[shiftID]
	for i, a := range list {
		if a.WorkerID == workerID {
			m.assignments[shiftID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return shift.ErrAssignmentNotFound
}

func (m *memStore) DeleteByShiftID(ctx context.Context, shiftID string) error {
	delete(m.assignments, shiftID)
	return nil
}

func (m *memStore) HasOverlapping(ctx context.Context, workerID string, start, end time.Time, excludeShiftID *string) (bool, error) {
	for shiftID, list := range m.assignments {
		if excludeShiftID != nil && shiftID == *excludeShiftID {
			continue
		}
		sh, ok := m.shifts[shiftID]
		if !ok {
			continue
		}
		for _, a := range list {
			if a.WorkerID == workerID && shift.Overlaps(start, end, sh.StartTime, sh.EndTime) {
				return true, nil
			}
		}
	}
	return false, nil
}

type assignmentStore struct {
	*memStore
}

func (s assignmentStore) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	return s.CreateAssignment(ctx, a)
}

func (s assignmentStore) Delete(ctx context.Context, shiftID, workerID string) error {
	return s.DeleteAssignment(ctx, shiftID, workerID)
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
	seq      int
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range f.holidays {
		if existing.MatchesDate(h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayDateTaken
		}
	}
	f.seq++
	h.ID = fmt.Sprintf("holiday-%d", f.seq)
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.ID == id {
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetAll(ctx context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for i := range f.holidays {
		if f.holidays[i].ID == h.ID {
			f.holidays[i] = h
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	for i := range f.holidays {
		if f.holidays[i].ID == id {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) AnyOnDate(ctx context.Context, date time.Time, excludeID *string) (bool, error) {
	for _, h := range f.holidays {
		if excludeID != nil && h.ID == *excludeID {
			continue
		}
		if h.MatchesDate(date) {
			return true, nil
		}
	}
	return false, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
