package analytics

import "time"

// MonthWindow returns the closed-open bounds [start, end) of the calendar
// month containing t.
func MonthWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// PrevMonthWindow returns the bounds of the month immediately before the one
// containing t.
func PrevMonthWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start, _ := MonthWindow(t, loc)
	return start.AddDate(0, -1, 0), start
}

// TrailingMonthsStart returns the first instant of the month n-1 months
// before the one containing t, i.e. the start of a trailing n-month window.
func TrailingMonthsStart(t time.Time, n int, loc *time.Location) time.Time {
	start, _ := MonthWindow(t, loc)
	return start.AddDate(0, -(n - 1), 0)
}
