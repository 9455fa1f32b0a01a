package in

import (
	"context"

	trackerdto "cutrack/internal/modules/tracker/dto"
	trackerin "cutrack/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, taskID, taskName string) (trackerdto.StartOutput, error) {
	return h.usecase.Start(ctx, trackerdto.StartInput{TaskID: taskID, TaskName: taskName})
}

func (h CLIHandler) Stop(ctx context.Context, taskID string) (trackerdto.StopOutput, error) {
	return h.usecase.Stop(ctx, trackerdto.StopInput{TaskID: taskID})
}

func (h CLIHandler) Status(ctx context.Context) trackerdto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) History(ctx context.Context, days int) ([]trackerdto.HistoryRecordOutput, error) {
	return h.usecase.History(ctx, trackerdto.HistoryInput{Days: days})
}
