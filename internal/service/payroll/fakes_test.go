package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/domain/worker"
)

// In-memory repositories backing the service tests.

type fakeShiftRepo struct {
	shifts []shift.Shift
	seq    int
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.seq++
	s.ID = fmt.Sprintf("shift-%d", f.seq)
	f.shifts = append(f.shifts, s)
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	for _, s := range f.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) GetByIDForUpdate(ctx context.Context, id string) (shift.Shift, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeShiftRepo) GetByHolidayID(ctx context.Context, holidayID string) (shift.Shift, error) {
	for _, s := range f.shifts {
		if s.HolidayID != nil && *s.HolidayID == holidayID {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) List(ctx context.Context, filter shift.Filter) ([]shift.Shift, error) {
	return f.shifts, nil
}

func (f *fakeShiftRepo) ListBetween(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	for i := range f.shifts {
		if f.shifts[i].ID == s.ID {
			f.shifts[i] = s
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) UpdateAssignmentState(ctx context.Context, id string, status shift.AssignmentStatus, selfAssignable, isAvailable bool) error {
	for i := range f.shifts {
		if f.shifts[i].ID == id {
			f.shifts[i].AssignmentStatus = status
			f.shifts[i].SelfAssignable = selfAssignable
			f.shifts[i].IsAvailable = isAvailable
			return nil
		}
	}
	return shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) ReclassifyOnDate(ctx context.Context, date time.Time, from, to shift.DayCategory) (int64, error) {
	var n int64
	for i := range f.shifts {
		s := f.shifts[i].StartTime
		if s.Year() == date.Year() && s.Month() == date.Month() && s.Day() == date.Day() && f.shifts[i].DayCategory == from {
			f.shifts[i].DayCategory = to
			n++
		}
	}
	return n, nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	for i := range f.shifts {
		if f.shifts[i].ID == id {
			f.shifts = append(f.shifts[:i], f.shifts[i+1:]...)
			return nil
		}
	}
	return shift.ErrShiftNotFound
}

func holidayOn(year int, month time.Month, day int) holiday.Holiday {
	return holiday.Holiday{
		ID:   fmt.Sprintf("holiday-%04d-%02d-%02d", year, month, day),
		Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Name: "Holiday",
	}
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	h.ID = fmt.Sprintf("holiday-%d", len(f.holidays)+1)
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

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	w.ID = fmt.Sprintf("worker-%d", len(f.workers)+1)
	f.workers = append(f.workers, w)
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByIDs(ctx context.Context, ids []string) ([]worker.Worker, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var out []worker.Worker
	for _, w := range f.workers {
		if _, ok := set[w.ID]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) List(ctx context.Context, activeOnly bool) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.workers {
		if activeOnly && !w.IsActive {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	for i := range f.workers {
		if f.workers[i].ID == w.ID {
			f.workers[i] = w
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

type fakeRateRepo struct {
	rates []payroll.HourlyRate
}

func (f *fakeRateRepo) Upsert(ctx context.Context, rates []payroll.HourlyRate) ([]payroll.HourlyRate, error) {
	for i := range rates {
		replaced := false
		for j := range f.rates {
			if f.rates[j].PeriodType == rates[i].PeriodType {
				f.rates[j].Rate = rates[i].Rate
				rates[i] = f.rates[j]
				replaced = true
				break
			}
		}
		if !replaced {
			rates[i].ID = fmt.Sprintf("rate-%d", len(f.rates)+1)
			f.rates = append(f.rates, rates[i])
		}
	}
	return rates, nil
}

func (f *fakeRateRepo) GetAll(ctx context.Context) ([]payroll.HourlyRate, error) {
	return f.rates, nil
}

type fakeDiscountRepo struct {
	discounts []payroll.Discount
}

func (f *fakeDiscountRepo) Create(ctx context.Context, d payroll.Discount) (payroll.Discount, error) {
	for i := range f.discounts {
		f.discounts[i].IsActive = false
	}
	d.ID = fmt.Sprintf("discount-%d", len(f.discounts)+1)
	d.IsActive = true
	f.discounts = append(f.discounts, d)
	return d, nil
}

func (f *fakeDiscountRepo) GetActive(ctx context.Context) (payroll.Discount, error) {
	for _, d := range f.discounts {
		if d.IsActive {
			return d, nil
		}
	}
	return payroll.Discount{}, payroll.ErrDiscountNotFound
}

func (f *fakeDiscountRepo) List(ctx context.Context) ([]payroll.Discount, error) {
	return f.discounts, nil
}

type fakeExternalRepo struct {
	entries []payroll.ExternalHours
}

func (f *fakeExternalRepo) Create(ctx context.Context, e payroll.ExternalHours) (payroll.ExternalHours, error) {
	e.ID = fmt.Sprintf("external-%d", len(f.entries)+1)
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeExternalRepo) ListBetween(ctx context.Context, from, to time.Time, workerID *string) ([]payroll.ExternalHours, error) {
	var out []payroll.ExternalHours
	for _, e := range f.entries {
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		if workerID != nil && e.WorkerID != *workerID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeExternalRepo) Delete(ctx context.Context, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return payroll.ErrExternalHoursNotFound
}
