package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the four-way rate key combining the day window with the
// weekday / weekend-or-holiday classification of the shift.
type PeriodType string

const (
	PeriodWeekdayDay          PeriodType = "WEEKDAY_DAY"
	PeriodWeekdayNight        PeriodType = "WEEKDAY_NIGHT"
	PeriodWeekendHolidayDay   PeriodType = "WEEKEND_HOLIDAY_DAY"
	PeriodWeekendHolidayNight PeriodType = "WEEKEND_HOLIDAY_NIGHT"
)

var PeriodTypeValues = []string{
	string(PeriodWeekdayDay),
	string(PeriodWeekdayNight),
	string(PeriodWeekendHolidayDay),
	string(PeriodWeekendHolidayNight),
}

// HourlyRate is one row of the four-entry rate table.
type HourlyRate struct {
	ID         string
	PeriodType PeriodType
	Rate       decimal.Decimal
	UpdatedAt  time.Time
}

type Discount struct {
	ID            string
	Amount        decimal.Decimal
	IsActive      bool
	EffectiveFrom time.Time
	CreatedAt     time.Time
}

// ExternalHours records work outside the shift roster, paid at a bespoke rate
// and always added to gross pay un-bucketed.
type ExternalHours struct {
	ID          string
	WorkerID    string
	Date        time.Time
	Hours       decimal.Decimal
	Rate        decimal.Decimal
	Description string
	CreatedAt   time.Time
}
