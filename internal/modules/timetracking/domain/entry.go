package domain

import (
	"fmt"
	"strings"
	"time"

	"cutrack/internal/platform/timeutil"
)

type Entry struct {
	ID          string
	TaskID      string
	TaskName    string
	Description string
	Start       time.Time
	End         time.Time
	DurationMS  int64
	Billable    bool
}

// Running reports whether the entry is an unterminated timer.
func (e Entry) Running() bool {
	return e.DurationMS < 0
}

// NewEntry is an outbound time entry; the duration is implied by End-Start.
type NewEntry struct {
	Description string
	Start       time.Time
	End         time.Time
	Billable    bool
}

func (e NewEntry) Validate() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("entry start and end are required")
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("entry end %s is before start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("entry description is required")
	}
	return nil
}

// SumPositiveDurations totals entries in milliseconds. Running timers
// (negative durations) and empty entries are left out.
func SumPositiveDurations(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		if e.DurationMS > 0 {
			total += e.DurationMS
		}
	}
	return total
}

type Period struct {
	Start time.Time
	End   time.Time
}

func DayPeriod(now time.Time) Period {
	return Period{Start: timeutil.StartOfDay(now), End: timeutil.EndOfDay(now)}
}

func WeekPeriod(now time.Time) Period {
	start, end := timeutil.WeekBounds(now)
	return Period{Start: start, End: end}
}
