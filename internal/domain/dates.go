package domain

import (
	"math"
	"time"
)

// DayLayout is the format of day keys, e.g. in Task.TimeSpentOnDay.
const DayLayout = "2006-01-02"

// TodayStr returns the day key of now in its own location.
func TodayStr(now time.Time) string {
	return now.Format(DayLayout)
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DiffInWeeks returns the number of weeks between the calendar days of d1 and d2,
// rounded to the nearest week. Positive when d2 is after d1.
func DiffInWeeks(d1, d2 time.Time) int {
	diff := StartOfDay(d2).Sub(StartOfDay(d1)).Hours() / (24 * 7)
	return int(math.Round(diff))
}
