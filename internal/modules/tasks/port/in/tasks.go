package in

import (
	"context"

	"cutrack/internal/modules/tasks/dto"
)

type Usecase interface {
	ListAssigned(ctx context.Context) ([]dto.TaskOutput, error)
	Search(ctx context.Context, query string) ([]dto.TaskOutput, error)
	GetTask(ctx context.Context, taskID string) (dto.TaskOutput, error)
	AddToMyTasks(ctx context.Context, taskID string) (dto.AddOutput, error)
	RemoveFromMyTasks(ctx context.Context, taskID string) (bool, error)
	MyTasks(ctx context.Context, input dto.MyTasksInput) ([]dto.MyTaskOutput, error)
	ClearCompleted(ctx context.Context) (int, error)
	UpdateTrackingState(ctx context.Context, input dto.TrackingUpdateInput) error
}
