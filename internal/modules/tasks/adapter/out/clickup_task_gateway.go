package out

import (
	"context"

	"cutrack/internal/modules/tasks/domain"
	tasksout "cutrack/internal/modules/tasks/port/out"
	"cutrack/internal/platform/clickup"
)

type ClickUpTaskGateway struct {
	client *clickup.Client
}

func NewClickUpTaskGateway(client *clickup.Client) tasksout.TaskGateway {
	return &ClickUpTaskGateway{client: client}
}

func (g *ClickUpTaskGateway) AssignedTasks(ctx context.Context, token, teamID, userID string) ([]domain.Task, error) {
	raw, err := g.client.TeamTasks(ctx, token, teamID, userID)
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(raw))
	for _, t := range raw {
		task := toDomain(t)
		if task.TeamID == "" {
			task.TeamID = teamID
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (g *ClickUpTaskGateway) Task(ctx context.Context, token, taskID string) (domain.Task, error) {
	t, err := g.client.Task(ctx, token, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	return toDomain(t), nil
}

func toDomain(t clickup.Task) domain.Task {
	return domain.Task{
		ID:          string(t.ID),
		Name:        t.Name,
		Description: t.Description,
		URL:         t.URL,
		Status:      t.Status.Status,
		ListID:      string(t.List.ID),
		ListName:    t.List.Name,
		ProjectID:   string(t.Project.ID),
		ProjectName: t.Project.Name,
		TeamID:      string(t.Team),
	}
}
