package leave

import "time"

// CalculateDays returns the inclusive day count between start and end.
// Both dates are truncated to midnight UTC before the span is computed, so
// time-of-day noise in the inputs cannot change the count.
func CalculateDays(start, end time.Time) (int, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
