package domain_test

import (
	"testing"
	"time"

	"cutrack/internal/modules/timetracking/domain"
)

func TestSumPositiveDurationsExcludesRunningTimers(t *testing.T) {
	t.Parallel()
	entries := []domain.Entry{{DurationMS: 1000}, {DurationMS: -500}, {DurationMS: 2000}}
	if got := domain.SumPositiveDurations(entries); got != 3000 {
		t.Fatalf("expected 3000, got %d", got)
	}
	if got := domain.SumPositiveDurations(nil); got != 0 {
		t.Fatalf("expected 0 for no entries, got %d", got)
	}
	if !entries[1].Running() || entries[0].Running() {
		t.Fatalf("only negative durations are running")
	}
}

func TestNewEntryValidate(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	ok := domain.NewEntry{Description: "x", Start: start, End: start.Add(time.Second)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
	zeroLength := domain.NewEntry{Description: "x", Start: start, End: start}
	if err := zeroLength.Validate(); err != nil {
		t.Fatalf("zero-length entry rejected: %v", err)
	}
	if err := (domain.NewEntry{Description: "x", Start: start, End: start.Add(-time.Second)}).Validate(); err == nil {
		t.Fatalf("end before start must fail")
	}
	if err := (domain.NewEntry{Start: start, End: start}).Validate(); err == nil {
		t.Fatalf("missing description must fail")
	}
}

func TestPeriods(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	day := domain.DayPeriod(now)
	if !day.Start.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) || day.End.Hour() != 23 {
		t.Fatalf("unexpected day period %+v", day)
	}
	week := domain.WeekPeriod(now)
	if week.Start.Weekday() != time.Monday || week.Start.Day() != 2 || week.End.Day() != 8 {
		t.Fatalf("unexpected week period %+v", week)
	}
}
