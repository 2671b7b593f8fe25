package holiday

import "time"

type Holiday struct {
	ID   string
	Date time.Time
	Name string
	// IsRecurrent holidays match by month and day across all years.
	IsRecurrent bool
	// RequiredDoctors drives the auto-generated self-assignable shift linked to
	// the holiday. Zero means no shift is implied.
	RequiredDoctors int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MatchesDate reports whether the holiday applies to the given calendar date.
func (h Holiday) MatchesDate(date time.Time) bool {
	if h.IsRecurrent {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() && h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
}
