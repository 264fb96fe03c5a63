// Package schedule turns a recurring obligation definition into the list of
// concrete due dates inside a queried range. All functions are pure; dates
// are treated as timezone-naive calendar dates with no time-of-day component.
package schedule

import "time"

// DateOnly normalises t to midnight UTC, discarding the time-of-day and
// timezone components. Every date entering the scheduler or matcher goes
// through this to avoid off-by-one drift.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month, leap years
// included.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay resolves a 1-31 due day against a target month: the result is
// min(day, daysInMonth). It never rolls over into the next month.
func ClampDay(year int, month time.Month, day int) time.Time {
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonths steps a (year, month) pair forward by n months, normalising
// overflow into the year. It works on the pair rather than a full date so
// that day-of-month clamping is applied per target month, not compounded.
func AddMonths(year int, month time.Month, n int) (int, time.Month) {
	m := int(month) - 1 + n
	return year + m/12, time.Month(m%12 + 1)
}

// DaysBetween returns the whole-day difference b-a between two calendar
// dates. Both inputs are normalised first.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// MonthRange returns the first and last calendar day of the given month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	return start, end
}
