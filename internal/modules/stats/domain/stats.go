package domain

import (
	"time"

	"cutrack/internal/platform/timeutil"
)

type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

type Statistics struct {
	TodaySeconds int64
	WeekSeconds  int64
	WeekStart    time.Time
	WeekEnd      time.Time
	Source       Source
}

func (s Statistics) WeekRange() string {
	return timeutil.FormatWeekRange(s.WeekStart, s.WeekEnd)
}

// Record is the slice of a local history record the fallback needs.
type Record struct {
	Date     string
	Duration int64
}

// Cached is the best-effort copy of the last remote totals, in seconds.
type Cached struct {
	Today     int64     `json:"today"`
	Week      int64     `json:"week"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Aggregate totals local records by their date key: today is the key of
// now, the week is the Monday-start week containing now.
func Aggregate(records []Record, now time.Time) Statistics {
	weekStart, weekEnd := timeutil.WeekBounds(now)
	today := timeutil.DateKey(now)
	from, to := timeutil.DateKey(weekStart), timeutil.DateKey(weekEnd)

	stats := Statistics{WeekStart: weekStart, WeekEnd: weekEnd, Source: SourceLocal}
	for _, r := range records {
		if r.Duration <= 0 {
			continue
		}
		if r.Date == today {
			stats.TodaySeconds += r.Duration
		}
		if r.Date >= from && r.Date <= to {
			stats.WeekSeconds += r.Duration
		}
	}
	return stats
}
