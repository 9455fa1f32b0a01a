package out

import (
	"context"

	"cutrack/internal/modules/tasks/domain"
)

type TaskGateway interface {
	AssignedTasks(ctx context.Context, token, teamID, userID string) ([]domain.Task, error)
	Task(ctx context.Context, token, taskID string) (domain.Task, error)
}

type MyTaskStore interface {
	Load(ctx context.Context) ([]domain.MyTask, error)
	Save(ctx context.Context, tasks []domain.MyTask) error
}

// Identity is the authenticated user task queries run as.
type Identity struct {
	Token  string
	UserID string
}

type CredentialSource interface {
	Identity(ctx context.Context) (Identity, error)
	TeamIDs(ctx context.Context) ([]string, error)
}
