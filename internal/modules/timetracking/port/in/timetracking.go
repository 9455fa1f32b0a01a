package in

import (
	"context"

	"cutrack/internal/modules/timetracking/dto"
)

type Usecase interface {
	FetchEntries(ctx context.Context, input dto.FetchInput) ([]dto.EntryOutput, error)
	DayTotal(ctx context.Context, input dto.TotalInput) (dto.TotalOutput, error)
	WeekTotal(ctx context.Context, input dto.TotalInput) (dto.TotalOutput, error)
	Statistics(ctx context.Context, input dto.TotalInput) (dto.StatisticsOutput, error)
	CreateEntry(ctx context.Context, input dto.CreateEntryInput) (dto.CreateEntryOutput, error)
}
