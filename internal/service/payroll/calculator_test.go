package payroll

import (
	"testing"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func testRates() RateTable {
	return RateTable{
		payroll.PeriodWeekdayDay:          decimal.NewFromInt(1000),
		payroll.PeriodWeekdayNight:        decimal.NewFromInt(1500),
		payroll.PeriodWeekendHolidayDay:   decimal.NewFromInt(2000),
		payroll.PeriodWeekendHolidayNight: decimal.NewFromInt(2500),
	}
}

func TestClassifyHour(t *testing.T) {
	tests := []struct {
		name             string
		hour             int
		weekendOrHoliday bool
		want             payroll.PeriodType
	}{
		{"midnight weekday", 0, false, payroll.PeriodWeekdayNight},
		{"last night hour before window", 8, false, payroll.PeriodWeekdayNight},
		{"window opens", 9, false, payroll.PeriodWeekdayDay},
		{"last day hour", 20, false, payroll.PeriodWeekdayDay},
		{"window closes", 21, false, payroll.PeriodWeekdayNight},
		{"late evening weekday", 23, false, payroll.PeriodWeekdayNight},
		{"window opens weekend", 9, true, payroll.PeriodWeekendHolidayDay},
		{"window closes weekend", 21, true, payroll.PeriodWeekendHolidayNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyHour(tt.hour, tt.weekendOrHoliday)
			if got != tt.want {
				t.Errorf("ClassifyHour(%d, %v) = %s, want %s", tt.hour, tt.weekendOrHoliday, got, tt.want)
			}
		})
	}
}

func TestNormalizeEnd(t *testing.T) {
	start := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want time.Time
	}{
		{
			"already valid",
			time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC),
		},
		{
			"equal to start",
			start,
			start.Add(24 * time.Hour),
		},
		{
			"overnight stored on the same day",
			time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEnd(start, tt.end)
			if !got.Equal(tt.want) {
				t.Errorf("NormalizeEnd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBucketShiftCrossesDayWindow(t *testing.T) {
	// 08:00-10:00 on a weekday: one night hour at 1500 plus one day hour at 1000.
	start := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	b := BucketShift(start, end, false, testRates())

	if !b.TotalHours.Equal(decimal.NewFromInt(2)) {
		t.Errorf("TotalHours = %s, want 2", b.TotalHours)
	}
	if !b.TotalAmount.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("TotalAmount = %s, want 2500", b.TotalAmount)
	}
	if !b.Periods[payroll.PeriodWeekdayNight].Hours.Equal(decimal.NewFromInt(1)) {
		t.Errorf("night hours = %s, want 1", b.Periods[payroll.PeriodWeekdayNight].Hours)
	}
	if !b.Periods[payroll.PeriodWeekdayDay].Hours.Equal(decimal.NewFromInt(1)) {
		t.Errorf("day hours = %s, want 1", b.Periods[payroll.PeriodWeekdayDay].Hours)
	}
}

func TestBucketShiftWeekendUsesWeekendRates(t *testing.T) {
	start := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	b := BucketShift(start, end, true, testRates())

	if !b.TotalAmount.Equal(decimal.NewFromInt(4500)) {
		t.Errorf("TotalAmount = %s, want 4500", b.TotalAmount)
	}
	if _, ok := b.Periods[payroll.PeriodWeekdayDay]; ok {
		t.Error("weekend shift must not accumulate weekday periods")
	}
}

func TestBucketShiftOvernightStaysOnStartDateClass(t *testing.T) {
	// Friday 22:00 to Saturday 04:00: the interval classifies from its start
	// date, so all six hours bucket as weekday night.
	start := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 4, 0, 0, 0, time.UTC)

	b := BucketShift(start, end, false, testRates())

	if !b.TotalHours.Equal(decimal.NewFromInt(6)) {
		t.Errorf("TotalHours = %s, want 6", b.TotalHours)
	}
	if !b.Periods[payroll.PeriodWeekdayNight].Hours.Equal(decimal.NewFromInt(6)) {
		t.Errorf("night hours = %s, want 6", b.Periods[payroll.PeriodWeekdayNight].Hours)
	}
	if !b.TotalAmount.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("TotalAmount = %s, want 9000", b.TotalAmount)
	}
}

func TestBucketShiftNormalizesMalformedEnd(t *testing.T) {
	// Stored as 22:00-06:00 on the same date; bucketing advances the end.
	start := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	b := BucketShift(start, end, false, testRates())

	if !b.TotalHours.Equal(decimal.NewFromInt(8)) {
		t.Errorf("TotalHours = %s, want 8", b.TotalHours)
	}
}

func TestBucketShiftMissingRatePricesZero(t *testing.T) {
	rates := RateTable{
		payroll.PeriodWeekdayDay: decimal.NewFromInt(1000),
	}
	start := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	b := BucketShift(start, end, false, rates)

	// The night hour still counts, it just pays nothing.
	if !b.TotalHours.Equal(decimal.NewFromInt(2)) {
		t.Errorf("TotalHours = %s, want 2", b.TotalHours)
	}
	if !b.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("TotalAmount = %s, want 1000", b.TotalAmount)
	}
	if !b.Periods[payroll.PeriodWeekdayNight].Amount.Equal(decimal.Zero) {
		t.Errorf("night amount = %s, want 0", b.Periods[payroll.PeriodWeekdayNight].Amount)
	}
}
