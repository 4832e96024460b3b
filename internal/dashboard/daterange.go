package dashboard

import "time"

// Period selects a dashboard date range. All resolution happens in UTC and
// dates are day-granular: start is 00:00:00 of the first day, end is
// 23:59:59 of the last day, so the interval is inclusive on both ends.
type Period string

const (
	PeriodCurrentWeek          Period = "current_week"
	PeriodCurrentMonth         Period = "current_month"
	PeriodCurrentQuarter       Period = "current_quarter"
	PeriodCurrentFinancialYear Period = "current_financial_year"
	PeriodCustom               Period = "custom"
)

const dateLayout = "2006-01-02"

// ResolveRange computes the concrete [start, end] interval for a period
// selector. For "custom" both bounds must parse as YYYY-MM-DD; a missing or
// unparseable bound falls back to the current month, it never errors. A
// custom range given backwards is swapped. The returned period reflects the
// fallback when one was taken.
//
// Weeks start on Monday. The financial year starts April 1.
func ResolveRange(period Period, customStart, customEnd string, now time.Time) (time.Time, time.Time, Period) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodCurrentWeek:
		// Monday-start week
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, endOfDay(start.AddDate(0, 0, 6)), period

	case PeriodCurrentQuarter:
		q := (int(today.Month()) - 1) / 3
		start := time.Date(today.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, endOfDay(start.AddDate(0, 3, -1)), period

	case PeriodCurrentFinancialYear:
		year := today.Year()
		if today.Month() < time.April {
			year--
		}
		start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
		return start, endOfDay(end), period

	case PeriodCustom:
		start, err1 := time.Parse(dateLayout, customStart)
		end, err2 := time.Parse(dateLayout, customEnd)
		if err1 != nil || err2 != nil {
			return currentMonth(today)
		}
		if start.After(end) {
			start, end = end, start
		}
		return start, endOfDay(end), period

	default:
		return currentMonth(today)
	}
}

func currentMonth(today time.Time) (time.Time, time.Time, Period) {
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, endOfDay(start.AddDate(0, 1, -1)), PeriodCurrentMonth
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
}
