package usecase

import "time"

// lastMonthRange returns the first and last instants of the calendar month
// preceding now, evaluated in loc. The upper bound is inclusive: a training
// ending exactly on it belongs to the period.
func lastMonthRange(now time.Time, loc *time.Location) (start, end time.Time) {
	now = now.In(loc)
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	start = startOfThisMonth.AddDate(0, -1, 0)
	end = startOfThisMonth.Add(-time.Nanosecond)
	return start, end
}

// periodKey identifies a report period, e.g. "2024-02".
func periodKey(start time.Time) string {
	return start.Format("2006-01")
}
