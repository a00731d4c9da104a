package utils

import "time"

// rippleEpochOffset is the number of seconds between the Unix epoch and the
// XRPL epoch (2000-01-01T00:00:00Z).
const rippleEpochOffset = 946684800

// RippleTimeToTime converts an XRPL close time to a UTC time.
func RippleTimeToTime(rippleSeconds int64) time.Time {
	return time.Unix(rippleSeconds+rippleEpochOffset, 0).UTC()
}

// AddCalendarMonths adds months to t as calendar months in loc. When the day
// of month does not exist in the target month it is clamped to the month's
// last day, so Jan 31 + 1 month is Feb 28 (or 29). The wall clock time of day
// is preserved.
func AddCalendarMonths(t time.Time, months int, loc *time.Location) time.Time {
	t = t.In(loc)
	year, month, day := t.Date()

	// Normalise the target month through time.Date on the first day, which
	// never overflows.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, loc)
	lastDay := daysIn(first.Year(), first.Month(), loc)
	if day > lastDay {
		day = lastDay
	}

	return time.Date(
		first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc,
	)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
