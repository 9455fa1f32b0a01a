package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cutrack/internal/modules/timetracking/domain"
	"cutrack/internal/modules/timetracking/dto"
	timetrackingin "cutrack/internal/modules/timetracking/port/in"
	"cutrack/internal/modules/timetracking/service"
	"cutrack/internal/platform/timeutil"
)

type Interactor struct {
	svc *service.TimeTrackingService
	log zerolog.Logger
}

func NewInteractor(svc *service.TimeTrackingService, logger zerolog.Logger) timetrackingin.Usecase {
	return &Interactor{svc: svc, log: logger}
}

func (i *Interactor) FetchEntries(ctx context.Context, input dto.FetchInput) ([]dto.EntryOutput, error) {
	entries, err := i.svc.FetchEntries(ctx, input.Token, input.TeamID, domain.Period{Start: input.Start, End: input.End}, input.UserID)
	if err != nil {
		return nil, err
	}
	return toEntryOutputs(entries), nil
}

func (i *Interactor) DayTotal(ctx context.Context, input dto.TotalInput) (dto.TotalOutput, error) {
	total, period, entries, err := i.svc.DayTotal(ctx, input.Token, input.TeamID, input.UserID)
	if err != nil {
		i.log.Warn().Err(err).Str("team_id", input.TeamID).Msg("fetch day total")
		return dto.TotalOutput{}, err
	}
	return dto.TotalOutput{TotalMS: total, Start: period.Start, End: period.End, Entries: toEntryOutputs(entries)}, nil
}

func (i *Interactor) WeekTotal(ctx context.Context, input dto.TotalInput) (dto.TotalOutput, error) {
	total, period, entries, err := i.svc.WeekTotal(ctx, input.Token, input.TeamID, input.UserID)
	if err != nil {
		i.log.Warn().Err(err).Str("team_id", input.TeamID).Msg("fetch week total")
		return dto.TotalOutput{}, err
	}
	return dto.TotalOutput{TotalMS: total, Start: period.Start, End: period.End, Entries: toEntryOutputs(entries)}, nil
}

// Statistics fetches the day and week totals concurrently. Either failure
// fails the whole call.
func (i *Interactor) Statistics(ctx context.Context, input dto.TotalInput) (dto.StatisticsOutput, error) {
	var day, week dto.TotalOutput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := i.DayTotal(gctx, input)
		day = out
		return err
	})
	g.Go(func() error {
		out, err := i.WeekTotal(gctx, input)
		week = out
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.StatisticsOutput{}, err
	}

	todaySeconds := day.TotalMS / 1000
	weekSeconds := week.TotalMS / 1000
	return dto.StatisticsOutput{
		TodaySeconds:   todaySeconds,
		WeekSeconds:    weekSeconds,
		TodayFormatted: timeutil.FormatSeconds(todaySeconds),
		WeekFormatted:  timeutil.FormatSeconds(weekSeconds),
		WeekStart:      week.Start,
		WeekEnd:        week.End,
	}, nil
}

func (i *Interactor) CreateEntry(ctx context.Context, input dto.CreateEntryInput) (dto.CreateEntryOutput, error) {
	entryID, err := i.svc.CreateEntry(ctx, input.Token, input.TaskID, domain.NewEntry{
		Description: input.Description,
		Start:       input.Start,
		End:         input.End,
		Billable:    input.Billable,
	})
	if err != nil {
		return dto.CreateEntryOutput{}, err
	}
	i.log.Info().Str("task_id", input.TaskID).Str("entry_id", entryID).Msg("time entry created")
	return dto.CreateEntryOutput{EntryID: entryID}, nil
}

func toEntryOutputs(entries []domain.Entry) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.EntryOutput{
			ID:          e.ID,
			TaskID:      e.TaskID,
			TaskName:    e.TaskName,
			Description: e.Description,
			Start:       e.Start,
			End:         e.End,
			DurationMS:  e.DurationMS,
		})
	}
	return out
}
