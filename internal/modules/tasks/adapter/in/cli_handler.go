package in

import (
	"context"

	tasksdto "cutrack/internal/modules/tasks/dto"
	tasksin "cutrack/internal/modules/tasks/port/in"
)

type CLIHandler struct {
	usecase tasksin.Usecase
}

func NewCLIHandler(usecase tasksin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]tasksdto.TaskOutput, error) {
	return h.usecase.ListAssigned(ctx)
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]tasksdto.TaskOutput, error) {
	return h.usecase.Search(ctx, query)
}

func (h CLIHandler) Mine(ctx context.Context, sortBy string) ([]tasksdto.MyTaskOutput, error) {
	return h.usecase.MyTasks(ctx, tasksdto.MyTasksInput{SortBy: sortBy})
}

func (h CLIHandler) Add(ctx context.Context, taskID string) (tasksdto.AddOutput, error) {
	return h.usecase.AddToMyTasks(ctx, taskID)
}

func (h CLIHandler) Remove(ctx context.Context, taskID string) (bool, error) {
	return h.usecase.RemoveFromMyTasks(ctx, taskID)
}

func (h CLIHandler) ClearCompleted(ctx context.Context) (int, error) {
	return h.usecase.ClearCompleted(ctx)
}
