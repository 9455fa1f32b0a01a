package service

import (
	"context"

	"cutrack/internal/modules/stats/domain"
	statsout "cutrack/internal/modules/stats/port/out"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
)

type StatsService struct {
	clock   clock.Clock
	account statsout.AccountSource
	remote  statsout.RemoteTotals
	local   statsout.LocalHistory
	cache   statsout.Cache
}

func NewStatsService(clock clock.Clock, account statsout.AccountSource, remote statsout.RemoteTotals, local statsout.LocalHistory, cache statsout.Cache) *StatsService {
	return &StatsService{clock: clock, account: account, remote: remote, local: local, cache: cache}
}

func (s *StatsService) Remote(ctx context.Context) (domain.Statistics, error) {
	identity, ok, err := s.account.Identity(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	if !ok {
		return domain.Statistics{}, apperrors.ErrAuth
	}
	teamID, err := s.account.ResolveTeam(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	stats, err := s.remote.Totals(ctx, identity, teamID)
	if err != nil {
		return domain.Statistics{}, err
	}
	stats.Source = domain.SourceRemote
	return stats, nil
}

func (s *StatsService) Cache(ctx context.Context, stats domain.Statistics) error {
	return s.cache.Save(ctx, domain.Cached{Today: stats.TodaySeconds, Week: stats.WeekSeconds, UpdatedAt: s.clock.Now()})
}

func (s *StatsService) Local(ctx context.Context) (domain.Statistics, error) {
	now := s.clock.Now()
	records, err := s.local.Records(ctx)
	if err != nil {
		return domain.Aggregate(nil, now), err
	}
	return domain.Aggregate(records, now), nil
}
