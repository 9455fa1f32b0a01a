package out

import (
	"context"
	"time"

	"cutrack/internal/modules/tracker/domain"
)

type SnapshotStore interface {
	// Load reports false when no snapshot is stored.
	Load(ctx context.Context) (domain.Snapshot, bool, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Delete(ctx context.Context) error
}

type HistoryStore interface {
	Append(ctx context.Context, record domain.HistoryRecord) error
	List(ctx context.Context) ([]domain.HistoryRecord, error)
}

// EntryRecorder writes the finished session to the remote time tracker and
// returns the remote entry id.
type EntryRecorder interface {
	Record(ctx context.Context, taskID string, start, end time.Time, description string) (string, error)
}

type TaskResolver interface {
	Resolve(ctx context.Context, taskID string) (domain.Task, error)
}
