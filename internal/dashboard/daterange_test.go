package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func fmtRange(start, end time.Time) (string, string) {
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func TestResolveRange_CurrentWeekStartsMonday(t *testing.T) {
	// 2024-05-15 is a Wednesday
	start, end, period := ResolveRange(PeriodCurrentWeek, "", "", at("2024-05-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2024-05-13", s)
	assert.Equal(t, "2024-05-19", e)
	assert.Equal(t, PeriodCurrentWeek, period)

	// a Monday is its own week start
	start, end, _ = ResolveRange(PeriodCurrentWeek, "", "", at("2024-05-13"))
	s, e = fmtRange(start, end)
	assert.Equal(t, "2024-05-13", s)
	assert.Equal(t, "2024-05-19", e)

	// a Sunday belongs to the week that started the previous Monday
	start, end, _ = ResolveRange(PeriodCurrentWeek, "", "", at("2024-05-19"))
	s, e = fmtRange(start, end)
	assert.Equal(t, "2024-05-13", s)
	assert.Equal(t, "2024-05-19", e)
}

func TestResolveRange_CurrentMonth(t *testing.T) {
	start, end, period := ResolveRange(PeriodCurrentMonth, "", "", at("2024-02-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2024-02-01", s)
	assert.Equal(t, "2024-02-29", e) // leap year
	assert.Equal(t, PeriodCurrentMonth, period)
}

func TestResolveRange_CurrentQuarter(t *testing.T) {
	start, end, _ := ResolveRange(PeriodCurrentQuarter, "", "", at("2024-05-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2024-04-01", s)
	assert.Equal(t, "2024-06-30", e)

	start, end, _ = ResolveRange(PeriodCurrentQuarter, "", "", at("2024-12-31"))
	s, e = fmtRange(start, end)
	assert.Equal(t, "2024-10-01", s)
	assert.Equal(t, "2024-12-31", e)
}

func TestResolveRange_FinancialYearStartsApril(t *testing.T) {
	// before April: previous year's FY
	start, end, _ := ResolveRange(PeriodCurrentFinancialYear, "", "", at("2024-02-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2023-04-01", s)
	assert.Equal(t, "2024-03-31", e)

	// April onwards: current year's FY
	start, end, _ = ResolveRange(PeriodCurrentFinancialYear, "", "", at("2024-05-15"))
	s, e = fmtRange(start, end)
	assert.Equal(t, "2024-04-01", s)
	assert.Equal(t, "2025-03-31", e)

	// boundary: April 1 itself
	start, end, _ = ResolveRange(PeriodCurrentFinancialYear, "", "", at("2024-04-01"))
	s, e = fmtRange(start, end)
	assert.Equal(t, "2024-04-01", s)
	assert.Equal(t, "2025-03-31", e)
}

func TestResolveRange_CustomUsesBothBounds(t *testing.T) {
	start, end, period := ResolveRange(PeriodCustom, "2024-01-10", "2024-01-20", at("2024-05-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2024-01-10", s)
	assert.Equal(t, "2024-01-20", e)
	assert.Equal(t, PeriodCustom, period)
}

func TestResolveRange_CustomBackwardsRangeIsSwapped(t *testing.T) {
	start, end, _ := ResolveRange(PeriodCustom, "2024-01-20", "2024-01-10", at("2024-05-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2024-01-10", s)
	assert.Equal(t, "2024-01-20", e)
}

func TestResolveRange_CustomFallsBackToCurrentMonth(t *testing.T) {
	for _, tc := range [][2]string{
		{"", ""},
		{"2024-01-10", ""},
		{"", "2024-01-20"},
		{"not-a-date", "2024-01-20"},
	} {
		start, end, period := ResolveRange(PeriodCustom, tc[0], tc[1], at("2024-05-15"))
		s, e := fmtRange(start, end)
		assert.Equal(t, "2024-05-01", s)
		assert.Equal(t, "2024-05-31", e)
		assert.Equal(t, PeriodCurrentMonth, period)
	}
}

func TestResolveRange_UnknownPeriodDefaultsToCurrentMonth(t *testing.T) {
	start, end, period := ResolveRange(Period("whatever"), "", "", at("2024-05-15"))
	s, e := fmtRange(start, end)
	assert.Equal(t, "2024-05-01", s)
	assert.Equal(t, "2024-05-31", e)
	assert.Equal(t, PeriodCurrentMonth, period)
}

func TestResolveRange_EndIsInclusiveInstant(t *testing.T) {
	_, end, _ := ResolveRange(PeriodCurrentMonth, "", "", at("2024-05-15"))
	// a shipment dated on the last day at midnight is inside the interval
	assert.False(t, at("2024-05-31").After(end))
}
