package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	accountout "cutrack/internal/modules/account/adapter/out"
	accountdomain "cutrack/internal/modules/account/domain"
	accountdto "cutrack/internal/modules/account/dto"
	accountservice "cutrack/internal/modules/account/service"
	accountusecase "cutrack/internal/modules/account/usecase"
	statsout "cutrack/internal/modules/stats/adapter/out"
	"cutrack/internal/modules/stats/domain"
	statsin "cutrack/internal/modules/stats/port/in"
	portout "cutrack/internal/modules/stats/port/out"
	"cutrack/internal/modules/stats/service"
	"cutrack/internal/modules/stats/usecase"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/kv"
)

var wednesday = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

type fakeAccount struct {
	identity portout.Identity
	ok       bool
	teamErr  error
}

func (f fakeAccount) Identity(context.Context) (portout.Identity, bool, error) {
	return f.identity, f.ok, nil
}

func (f fakeAccount) ResolveTeam(context.Context) (string, error) {
	if f.teamErr != nil {
		return "", f.teamErr
	}
	return "team-1", nil
}

type fakeRemote struct {
	calls  int
	teamID string
	err    error
}

func (f *fakeRemote) Totals(_ context.Context, _ portout.Identity, teamID string) (domain.Statistics, error) {
	f.calls++
	f.teamID = teamID
	if f.err != nil {
		return domain.Statistics{}, f.err
	}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return domain.Statistics{TodaySeconds: 3725, WeekSeconds: 36000, WeekStart: start, WeekEnd: start.AddDate(0, 0, 7).Add(-time.Millisecond)}, nil
}

type fakeHistory struct {
	records []domain.Record
	err     error
}

func (f fakeHistory) Records(context.Context) ([]domain.Record, error) {
	return f.records, f.err
}

type fakeCache struct {
	saved []domain.Cached
	err   error
}

func (f *fakeCache) Save(_ context.Context, cached domain.Cached) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, cached)
	return nil
}

var localRecords = []domain.Record{{Date: "2026-03-04", Duration: 120}, {Date: "2026-03-03", Duration: 60}}

func newStats(account portout.AccountSource, remote portout.RemoteTotals, history portout.LocalHistory, cache portout.Cache) statsin.Usecase {
	return usecase.NewInteractor(service.NewStatsService(clock.NewFake(wednesday), account, remote, history, cache), zerolog.Nop())
}

func TestRemoteStatisticsAreFormattedAndCached(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{}
	cache := &fakeCache{}
	uc := newStats(fakeAccount{identity: portout.Identity{Token: "pk_1234567890", UserID: "42"}, ok: true}, remote, fakeHistory{records: localRecords}, cache)

	out := uc.GetProductivityStats(context.Background())
	if out.Source != "remote" || out.TodayFormatted != "01:02:05" || out.WeekFormatted != "10:00:00" || out.WeekRange != "Mar 2 - Mar 8" {
		t.Fatalf("unexpected remote stats %+v", out)
	}
	if remote.teamID != "team-1" {
		t.Fatalf("expected resolved team, got %q", remote.teamID)
	}
	if len(cache.saved) != 1 || cache.saved[0].Today != 3725 || cache.saved[0].Week != 36000 || !cache.saved[0].UpdatedAt.Equal(wednesday) {
		t.Fatalf("unexpected cache writes %+v", cache.saved)
	}
}

func TestCacheFailureDoesNotChangeResult(t *testing.T) {
	t.Parallel()
	uc := newStats(fakeAccount{identity: portout.Identity{Token: "pk_1234567890", UserID: "42"}, ok: true}, &fakeRemote{}, fakeHistory{}, &fakeCache{err: errors.New("read-only")})
	out := uc.GetProductivityStats(context.Background())
	if out.Source != "remote" || out.TodaySeconds != 3725 {
		t.Fatalf("cache failure must not alter the result, got %+v", out)
	}
}

func TestRemoteFailureFallsBackToLocalHistory(t *testing.T) {
	t.Parallel()
	for name, account := range map[string]fakeAccount{
		"remote error":  {identity: portout.Identity{Token: "pk_1234567890", UserID: "42"}, ok: true},
		"no team":       {identity: portout.Identity{Token: "pk_1234567890", UserID: "42"}, ok: true, teamErr: apperrors.ErrNoTeam},
		"no credential": {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cache := &fakeCache{}
			uc := newStats(account, &fakeRemote{err: &apperrors.RemoteError{Status: 503}}, fakeHistory{records: localRecords}, cache)
			out := uc.GetProductivityStats(context.Background())
			if out.Source != "local" || out.TodaySeconds != 120 || out.WeekSeconds != 180 {
				t.Fatalf("unexpected local stats %+v", out)
			}
			if out.TodayFormatted != "00:02:00" || out.WeekRange != "Mar 2 - Mar 8" {
				t.Fatalf("unexpected formatting %+v", out)
			}
			if len(cache.saved) != 0 {
				t.Fatalf("local statistics must not be cached")
			}
		})
	}
}

func TestUnreadableHistoryYieldsZeros(t *testing.T) {
	t.Parallel()
	uc := newStats(fakeAccount{}, &fakeRemote{}, fakeHistory{err: errors.New("corrupt")}, &fakeCache{})
	out := uc.GetProductivityStats(context.Background())
	if out.TodaySeconds != 0 || out.WeekSeconds != 0 || out.TodayFormatted != "00:00:00" || out.Source != "local" {
		t.Fatalf("expected zero totals, got %+v", out)
	}
	if out.StartDate.IsZero() || out.EndDate.IsZero() {
		t.Fatalf("week bounds must still be set")
	}
}

type countingIdentity struct {
	teamCalls int
}

func (c *countingIdentity) CurrentUser(context.Context, string) (accountdomain.User, error) {
	return accountdomain.User{ID: "42", Username: "ada"}, nil
}

func (c *countingIdentity) Teams(context.Context, string) ([]accountdomain.Team, error) {
	c.teamCalls++
	return []accountdomain.Team{{ID: "team-9"}}, nil
}

func TestTeamIsFetchedOnceThenCachedAcrossCalls(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &countingIdentity{}
	account := accountusecase.NewInteractor(accountservice.NewAccountService(accountout.NewKVCredentialStore(store), identity), zerolog.Nop())
	if _, err := account.Authenticate(context.Background(), accountdto.AuthenticateInput{Token: "pk_1234567890"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	remote := &fakeRemote{}
	uc := newStats(statsout.NewAccountSource(account), remote, fakeHistory{}, statsout.NewKVCache(store))

	for range 3 {
		if out := uc.GetProductivityStats(context.Background()); out.Source != "remote" {
			t.Fatalf("expected remote stats, got %+v", out)
		}
	}
	if identity.teamCalls != 1 || remote.teamID != "team-9" {
		t.Fatalf("expected one teams request for team-9, got %d (%s)", identity.teamCalls, remote.teamID)
	}
	if !store.Has(accountout.TeamIDKey) || !store.Has(statsout.CacheKey) {
		t.Fatalf("team id and statistics must be cached")
	}
}
