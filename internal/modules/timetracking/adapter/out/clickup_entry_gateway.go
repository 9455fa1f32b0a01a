package out

import (
	"context"
	"time"

	"cutrack/internal/modules/timetracking/domain"
	timetrackingout "cutrack/internal/modules/timetracking/port/out"
	"cutrack/internal/platform/clickup"
)

type ClickUpEntryGateway struct {
	client *clickup.Client
}

func NewClickUpEntryGateway(client *clickup.Client) timetrackingout.EntryGateway {
	return &ClickUpEntryGateway{client: client}
}

func (g *ClickUpEntryGateway) ListEntries(ctx context.Context, token, teamID string, period domain.Period, userID string) ([]domain.Entry, error) {
	raw, err := g.client.TimeEntries(ctx, token, teamID, period.Start.UnixMilli(), period.End.UnixMilli(), userID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(raw))
	for _, r := range raw {
		entry := domain.Entry{
			ID:          string(r.ID),
			Description: r.Description,
			Start:       fromMillis(int64(r.Start)),
			End:         fromMillis(int64(r.End)),
			DurationMS:  int64(r.Duration),
			Billable:    r.Billable,
		}
		if r.Task != nil {
			entry.TaskID = string(r.Task.ID)
			entry.TaskName = r.Task.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (g *ClickUpEntryGateway) CreateEntry(ctx context.Context, token, taskID string, entry domain.NewEntry) (string, error) {
	return g.client.CreateTimeEntry(ctx, token, taskID, clickup.NewTimeEntry{
		Description: entry.Description,
		Start:       entry.Start.UnixMilli(),
		End:         entry.End.UnixMilli(),
		Billable:    entry.Billable,
	})
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
