// Package timeutil holds the duration formatting and calendar boundary
// rules shared by the tracker and the statistics views.
package timeutil

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// FormatSeconds renders a duration as HH:MM:SS. Hours are not wrapped at 24.
func FormatSeconds(total int64) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatMillis truncates to whole seconds before formatting.
func FormatMillis(ms int64) string {
	if ms <= 0 {
		return "00:00:00"
	}
	return FormatSeconds(ms / 1000)
}

// ElapsedSeconds is floor((now - start) / 1s), never negative.
func ElapsedSeconds(start, now time.Time) int64 {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is 23:59:59.999 of the same calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// WeekBounds returns the Monday 00:00:00.000 to Sunday 23:59:59.999 window
// containing t, in t's location.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	offset := 1 - int(t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	y, m, d := t.Date()
	start := time.Date(y, m, d+offset, 0, 0, 0, 0, t.Location())
	sy, sm, sd := start.Date()
	end := time.Date(sy, sm, sd+6, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// FormatWeekRange renders "Jan 2 - Jan 8".
func FormatWeekRange(start, end time.Time) string {
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key at midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, loc)
}
