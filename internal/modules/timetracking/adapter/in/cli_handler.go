package in

import (
	"context"
	"time"

	timetrackingdto "cutrack/internal/modules/timetracking/dto"
	timetrackingin "cutrack/internal/modules/timetracking/port/in"
)

type CLIHandler struct {
	usecase timetrackingin.Usecase
}

func NewCLIHandler(usecase timetrackingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Entries(ctx context.Context, token, teamID, userID string, start, end time.Time) ([]timetrackingdto.EntryOutput, error) {
	return h.usecase.FetchEntries(ctx, timetrackingdto.FetchInput{Token: token, TeamID: teamID, UserID: userID, Start: start, End: end})
}

func (h CLIHandler) Statistics(ctx context.Context, token, teamID, userID string) (timetrackingdto.StatisticsOutput, error) {
	return h.usecase.Statistics(ctx, timetrackingdto.TotalInput{Token: token, TeamID: teamID, UserID: userID})
}
