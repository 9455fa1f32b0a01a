package out

import (
	"context"

	tasksin "cutrack/internal/modules/tasks/port/in"
	"cutrack/internal/modules/tracker/domain"
	trackerout "cutrack/internal/modules/tracker/port/out"
)

type TasksResolver struct {
	tasks tasksin.Usecase
}

func NewTasksResolver(tasks tasksin.Usecase) trackerout.TaskResolver {
	return &TasksResolver{tasks: tasks}
}

func (r *TasksResolver) Resolve(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := r.tasks.GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{ID: task.ID, Name: task.Name}, nil
}
