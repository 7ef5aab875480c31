package util

import "time"

// DayStart truncates t to UTC midnight. Daily aggregates are keyed by this.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRange returns the UTC day boundaries covering the trailing n days
// ending at now: from is n-1 days before now's midnight, to is the first
// midnight after now.
func DayRange(now time.Time, n int) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	day := DayStart(now)
	return day.AddDate(0, 0, -(n - 1)), day.AddDate(0, 0, 1)
}
