package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"cutrack/internal/modules/stats/domain"
	"cutrack/internal/modules/stats/dto"
	statsin "cutrack/internal/modules/stats/port/in"
	"cutrack/internal/modules/stats/service"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/timeutil"
)

type Interactor struct {
	svc *service.StatsService
	log zerolog.Logger
}

func NewInteractor(svc *service.StatsService, logger zerolog.Logger) statsin.Usecase {
	return &Interactor{svc: svc, log: logger}
}

func (i *Interactor) GetProductivityStats(ctx context.Context) dto.StatisticsOutput {
	stats, err := i.svc.Remote(ctx)
	if err == nil {
		if cacheErr := i.svc.Cache(ctx, stats); cacheErr != nil {
			i.log.Warn().Err(cacheErr).Msg("cache time statistics")
		}
		return toOutput(stats)
	}
	if errors.Is(err, apperrors.ErrAuth) && !isRemote(err) {
		i.log.Debug().Msg("no credential; using local statistics")
	} else {
		i.log.Warn().Err(err).Msg("remote statistics unavailable; using local history")
	}

	local, err := i.svc.Local(ctx)
	if err != nil {
		i.log.Warn().Err(err).Msg("read local history")
	}
	return toOutput(local)
}

func isRemote(err error) bool {
	var remote *apperrors.RemoteError
	return errors.As(err, &remote)
}

func toOutput(s domain.Statistics) dto.StatisticsOutput {
	return dto.StatisticsOutput{
		TodaySeconds:   s.TodaySeconds,
		WeekSeconds:    s.WeekSeconds,
		TodayFormatted: timeutil.FormatSeconds(s.TodaySeconds),
		WeekFormatted:  timeutil.FormatSeconds(s.WeekSeconds),
		WeekRange:      s.WeekRange(),
		StartDate:      s.WeekStart,
		EndDate:        s.WeekEnd,
		Source:         string(s.Source),
	}
}
