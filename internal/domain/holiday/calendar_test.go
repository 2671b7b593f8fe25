package holiday

import (
	"testing"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarClassify(t *testing.T) {
	cal := NewCalendar([]Holiday{
		{ID: "h1", Name: "Foundation Day", Date: date(2025, time.March, 12)},                    // Wednesday
		{ID: "h2", Name: "New Year", Date: date(2020, time.January, 1), IsRecurrent: true},      // recurs every Jan 1
		{ID: "h3", Name: "Summer Fest", Date: date(2025, time.June, 14)},                       // Saturday
	})

	cases := []struct {
		name string
		in   time.Time
		want shift.DayCategory
	}{
		{"plain weekday", date(2025, time.March, 11), shift.DayCategoryWeekday},
		{"exact holiday", date(2025, time.March, 12), shift.DayCategoryHoliday},
		{"same month-day other year, non-recurrent", date(2024, time.March, 12), shift.DayCategoryWeekday},
		{"recurring holiday this year", date(2025, time.January, 1), shift.DayCategoryHoliday},  // Wednesday
		{"recurring holiday another year", date(2027, time.January, 1), shift.DayCategoryHoliday}, // Friday
		{"saturday", date(2025, time.June, 7), shift.DayCategoryWeekend},
		{"sunday", date(2025, time.June, 8), shift.DayCategoryWeekend},
		{"holiday on saturday stays weekend", date(2025, time.June, 14), shift.DayCategoryWeekend},
		{"recurring holiday on sunday stays weekend", date(2023, time.January, 1), shift.DayCategoryWeekend},
	}
	for _, c := range cases {
		if got := cal.Classify(c.in); got != c.want {
			t.Errorf("%s: Classify(%s) = %s, want %s", c.name, c.in.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestCalendarHolidayOn(t *testing.T) {
	exact := Holiday{ID: "h1", Name: "Foundation Day", Date: date(2025, time.March, 12)}
	recurring := Holiday{ID: "h2", Name: "New Year", Date: date(2020, time.January, 1), IsRecurrent: true}
	cal := NewCalendar([]Holiday{exact, recurring})

	if got := cal.HolidayOn(date(2025, time.March, 12)); got == nil || got.ID != "h1" {
		t.Errorf("HolidayOn exact date = %v, want h1", got)
	}
	if got := cal.HolidayOn(date(2026, time.January, 1)); got == nil || got.ID != "h2" {
		t.Errorf("HolidayOn recurring date = %v, want h2", got)
	}
	if got := cal.HolidayOn(date(2025, time.March, 13)); got != nil {
		t.Errorf("HolidayOn plain date = %v, want nil", got)
	}
}

func TestHolidayMatchesDate(t *testing.T) {
	h := Holiday{Date: date(2020, time.May, 1), IsRecurrent: true}
	if !h.MatchesDate(date(2031, time.May, 1)) {
		t.Error("recurrent holiday should match month-day in any year")
	}
	if h.MatchesDate(date(2031, time.May, 2)) {
		t.Error("recurrent holiday should not match a different day")
	}

	h.IsRecurrent = false
	if !h.MatchesDate(date(2020, time.May, 1)) {
		t.Error("non-recurrent holiday should match its exact date")
	}
	if h.MatchesDate(date(2021, time.May, 1)) {
		t.Error("non-recurrent holiday should not match other years")
	}
}
