package out

import (
	"context"

	"cutrack/internal/modules/stats/domain"
	statsout "cutrack/internal/modules/stats/port/out"
	timetrackingdto "cutrack/internal/modules/timetracking/dto"
	timetrackingin "cutrack/internal/modules/timetracking/port/in"
)

type TimeTrackingTotals struct {
	entries timetrackingin.Usecase
}

func NewTimeTrackingTotals(entries timetrackingin.Usecase) statsout.RemoteTotals {
	return &TimeTrackingTotals{entries: entries}
}

func (t *TimeTrackingTotals) Totals(ctx context.Context, identity statsout.Identity, teamID string) (domain.Statistics, error) {
	out, err := t.entries.Statistics(ctx, timetrackingdto.TotalInput{Token: identity.Token, TeamID: teamID, UserID: identity.UserID})
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.Statistics{
		TodaySeconds: out.TodaySeconds,
		WeekSeconds:  out.WeekSeconds,
		WeekStart:    out.WeekStart,
		WeekEnd:      out.WeekEnd,
	}, nil
}
