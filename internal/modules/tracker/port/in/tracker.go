package in

import (
	"context"

	"cutrack/internal/modules/tracker/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	Restore(ctx context.Context) (dto.RestoreOutput, error)
	Status(ctx context.Context) dto.StatusOutput
	History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryRecordOutput, error)
	// Subscribe registers fn for every event and returns its unsubscribe
	// function. Handlers run synchronously and must not call Start or Stop.
	Subscribe(fn func(dto.Event)) func()
	Close()
}
