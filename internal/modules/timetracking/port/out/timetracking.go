package out

import (
	"context"

	"cutrack/internal/modules/timetracking/domain"
)

type EntryGateway interface {
	ListEntries(ctx context.Context, token, teamID string, period domain.Period, userID string) ([]domain.Entry, error)
	CreateEntry(ctx context.Context, token, taskID string, entry domain.NewEntry) (string, error)
}
