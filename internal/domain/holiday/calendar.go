package holiday

import (
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
)

const (
	exactKeyLayout     = "2006-01-02"
	recurringKeyLayout = "01-02"
)

// Calendar is an immutable snapshot of holiday records used to classify
// calendar dates. Build one per operation; it never touches storage.
type Calendar struct {
	exact     map[string]Holiday
	recurring map[string]Holiday
}

func NewCalendar(holidays []Holiday) Calendar {
	c := Calendar{
		exact:     make(map[string]Holiday),
		recurring: make(map[string]Holiday),
	}
	for _, h := range holidays {
		if h.IsRecurrent {
			c.recurring[h.Date.Format(recurringKeyLayout)] = h
		} else {
			c.exact[h.Date.Format(exactKeyLayout)] = h
		}
	}
	return c
}

// Classify maps a date to its pay-relevant category. Saturday and Sunday
// always classify as WEEKEND, even when a holiday falls on the same date.
func (c Calendar) Classify(date time.Time) shift.DayCategory {
	if IsWeekend(date) {
		return shift.DayCategoryWeekend
	}
	if c.holidayOn(date) != nil {
		return shift.DayCategoryHoliday
	}
	return shift.DayCategoryWeekday
}

// HolidayOn returns the holiday matching the date, exact matches first.
func (c Calendar) HolidayOn(date time.Time) *Holiday {
	return c.holidayOn(date)
}

func (c Calendar) holidayOn(date time.Time) *Holiday {
	if h, ok := c.exact[date.Format(exactKeyLayout)]; ok {
		return &h
	}
	if h, ok := c.recurring[date.Format(recurringKeyLayout)]; ok {
		return &h
	}
	return nil
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
