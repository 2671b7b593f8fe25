package payroll

import (
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Day window boundaries: local hour in [9, 21) pays the day rate, everything
// else pays the night rate.
const (
	dayWindowStart = 9
	dayWindowEnd   = 21
)

// RateTable maps period types to hourly rates. A missing entry prices that
// period at zero instead of failing the whole computation.
type RateTable map[payroll.PeriodType]decimal.Decimal

func (t RateTable) rateFor(p payroll.PeriodType) decimal.Decimal {
	if r, ok := t[p]; ok {
		return r
	}
	return decimal.Zero
}

// PeriodTotal accumulates hours and pay for one period type.
type PeriodTotal struct {
	Hours  decimal.Decimal
	Amount decimal.Decimal
}

// ShiftBreakdown is the result of bucketing a single shift interval.
type ShiftBreakdown struct {
	Periods     map[payroll.PeriodType]PeriodTotal
	TotalHours  decimal.Decimal
	TotalAmount decimal.Decimal
}

// NormalizeEnd advances a malformed end instant in 24-hour steps until it is
// strictly after start. Overnight entries stored with end <= start bucket
// normally afterwards.
func NormalizeEnd(start, end time.Time) time.Time {
	for !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return end
}

// ClassifyHour selects the period type for one hour bucket. The
// weekend-or-holiday flag is decided once per shift from its start date; a
// shift is never re-classified per hour even when it spans past midnight.
func ClassifyHour(hour int, weekendOrHoliday bool) payroll.PeriodType {
	day := hour >= dayWindowStart && hour < dayWindowEnd
	switch {
	case weekendOrHoliday && day:
		return payroll.PeriodWeekendHolidayDay
	case weekendOrHoliday:
		return payroll.PeriodWeekendHolidayNight
	case day:
		return payroll.PeriodWeekdayDay
	default:
		return payroll.PeriodWeekdayNight
	}
}

// BucketShift walks the interval in one-hour increments and accumulates hours
// and amount per period type. Pure over its inputs; no storage dependency.
func BucketShift(start, end time.Time, weekendOrHoliday bool, rates RateTable) ShiftBreakdown {
	end = NormalizeEnd(start, end)

	breakdown := ShiftBreakdown{
		Periods: make(map[payroll.PeriodType]PeriodTotal),
	}
	one := decimal.NewFromInt(1)

	for t := start; t.Before(end); t = t.Add(time.Hour) {
		period := ClassifyHour(t.Hour(), weekendOrHoliday)
		rate := rates.rateFor(period)

		total := breakdown.Periods[period]
		total.Hours = total.Hours.Add(one)
		total.Amount = total.Amount.Add(rate)
		breakdown.Periods[period] = total

		breakdown.TotalHours = breakdown.TotalHours.Add(one)
		breakdown.TotalAmount = breakdown.TotalAmount.Add(rate)
	}

	return breakdown
}
