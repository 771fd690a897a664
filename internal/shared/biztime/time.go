// Package biztime provides time utilities for billing and statistics.
// All storage and transport use UTC; implicit local timezones are prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of the day for t in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns the last nanosecond of the day for t in UTC.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonthUTC returns the first instant of the given month in UTC.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// ToUTC normalizes a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
