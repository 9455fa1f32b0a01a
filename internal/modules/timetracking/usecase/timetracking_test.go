package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"cutrack/internal/modules/timetracking/domain"
	"cutrack/internal/modules/timetracking/dto"
	"cutrack/internal/modules/timetracking/service"
	"cutrack/internal/modules/timetracking/usecase"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
)

type listCall struct {
	token  string
	teamID string
	period domain.Period
	userID string
}

type fakeGateway struct {
	mu       sync.Mutex
	calls    []listCall
	entries  func(period domain.Period) ([]domain.Entry, error)
	created  []domain.NewEntry
	createID string
	err      error
}

func (f *fakeGateway) ListEntries(_ context.Context, token, teamID string, period domain.Period, userID string) ([]domain.Entry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, listCall{token: token, teamID: teamID, period: period, userID: userID})
	f.mu.Unlock()
	if f.entries == nil {
		return nil, nil
	}
	return f.entries(period)
}

func (f *fakeGateway) CreateEntry(_ context.Context, _, _ string, entry domain.NewEntry) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, entry)
	return f.createID, nil
}

var wednesday = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func newInteractor(gw *fakeGateway) *usecase.Interactor {
	svc := service.NewTimeTrackingService(clock.NewFake(wednesday), gw)
	return usecase.NewInteractor(svc, zerolog.Nop()).(*usecase.Interactor)
}

func TestStatisticsSumsPositiveDurationsPerPeriod(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{entries: func(period domain.Period) ([]domain.Entry, error) {
		if period.Start.Weekday() == time.Monday {
			return []domain.Entry{{DurationMS: 3_600_000}, {DurationMS: 1_800_000}, {DurationMS: -20}}, nil
		}
		return []domain.Entry{{DurationMS: 1000}, {DurationMS: -500}, {DurationMS: 2000}}, nil
	}}
	uc := newInteractor(gw)

	stats, err := uc.Statistics(context.Background(), dto.TotalInput{Token: "pk_token", TeamID: "team-1", UserID: "42"})
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TodaySeconds != 3 || stats.TodayFormatted != "00:00:03" {
		t.Fatalf("unexpected today %d %s", stats.TodaySeconds, stats.TodayFormatted)
	}
	if stats.WeekSeconds != 5400 || stats.WeekFormatted != "01:30:00" {
		t.Fatalf("unexpected week %d %s", stats.WeekSeconds, stats.WeekFormatted)
	}
	if stats.WeekStart.Day() != 2 || stats.WeekEnd.Day() != 8 {
		t.Fatalf("unexpected week bounds %s %s", stats.WeekStart, stats.WeekEnd)
	}
	if len(gw.calls) != 2 {
		t.Fatalf("expected two remote calls, got %d", len(gw.calls))
	}
	for _, call := range gw.calls {
		if call.token != "pk_token" || call.teamID != "team-1" || call.userID != "42" {
			t.Fatalf("unexpected call %+v", call)
		}
	}
}

func TestDayTotalRangeCoversWholeDay(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newInteractor(gw)
	out, err := uc.DayTotal(context.Background(), dto.TotalInput{Token: "pk_token", TeamID: "team-1"})
	if err != nil {
		t.Fatalf("day total: %v", err)
	}
	if out.TotalMS != 0 {
		t.Fatalf("expected empty total, got %d", out.TotalMS)
	}
	if !out.Start.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", out.Start)
	}
	if !out.End.Equal(time.Date(2026, 3, 4, 23, 59, 59, int(999*time.Millisecond), time.UTC)) {
		t.Fatalf("unexpected end %s", out.End)
	}
}

func TestStatisticsFailsWhenEitherTotalFails(t *testing.T) {
	t.Parallel()
	remote := &apperrors.RemoteError{Status: 500, Message: "boom"}
	gw := &fakeGateway{entries: func(period domain.Period) ([]domain.Entry, error) {
		if period.Start.Weekday() == time.Monday {
			return nil, remote
		}
		return []domain.Entry{{DurationMS: 1000}}, nil
	}}
	uc := newInteractor(gw)
	_, err := uc.Statistics(context.Background(), dto.TotalInput{Token: "pk_token", TeamID: "team-1"})
	if !errors.Is(err, remote) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestFetchRequiresTokenAndTeam(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeGateway{})
	if _, err := uc.FetchEntries(context.Background(), dto.FetchInput{TeamID: "team-1"}); !errors.Is(err, apperrors.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if _, err := uc.FetchEntries(context.Background(), dto.FetchInput{Token: "pk_token"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateEntryValidatesAndReturnsID(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{createID: "entry-9"}
	uc := newInteractor(gw)
	start := wednesday.Add(-time.Hour)

	out, err := uc.CreateEntry(context.Background(), dto.CreateEntryInput{
		TaskID: "abc", Token: "pk_token", Description: "Session of 01:00:00 from cutrack", Start: start, End: wednesday, Billable: true,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if out.EntryID != "entry-9" || len(gw.created) != 1 || !gw.created[0].Billable {
		t.Fatalf("unexpected create result %+v %+v", out, gw.created)
	}

	_, err = uc.CreateEntry(context.Background(), dto.CreateEntryInput{TaskID: "abc", Token: "pk_token", Description: "x", Start: wednesday, End: start})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for reversed range, got %v", err)
	}
	_, err = uc.CreateEntry(context.Background(), dto.CreateEntryInput{Token: "pk_token", Description: "x", Start: start, End: wednesday})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing task, got %v", err)
	}
}
