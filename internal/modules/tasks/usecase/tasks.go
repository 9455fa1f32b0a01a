package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cutrack/internal/modules/tasks/domain"
	"cutrack/internal/modules/tasks/dto"
	tasksin "cutrack/internal/modules/tasks/port/in"
	"cutrack/internal/modules/tasks/service"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/timeutil"
)

type Interactor struct {
	svc *service.TasksService
	log zerolog.Logger
}

func NewInteractor(svc *service.TasksService, logger zerolog.Logger) tasksin.Usecase {
	return &Interactor{svc: svc, log: logger}
}

func (i *Interactor) ListAssigned(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.ListAssigned(ctx)
	if err != nil {
		return nil, err
	}
	return i.withMembership(ctx, tasks), nil
}

func (i *Interactor) Search(ctx context.Context, query string) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return i.withMembership(ctx, tasks), nil
}

func (i *Interactor) GetTask(ctx context.Context, taskID string) (dto.TaskOutput, error) {
	task, err := i.svc.GetTask(ctx, taskID)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTaskOutput(task, false), nil
}

func (i *Interactor) AddToMyTasks(ctx context.Context, taskID string) (dto.AddOutput, error) {
	task, added, err := i.svc.AddToMyTasks(ctx, taskID)
	if err != nil {
		return dto.AddOutput{}, err
	}
	if added {
		i.log.Info().Str("task_id", taskID).Str("name", task.Task.Name).Msg("task added to my tasks")
	} else {
		i.log.Debug().Str("task_id", taskID).Msg("task already in my tasks")
	}
	return dto.AddOutput{Task: toMyTaskOutput(task), Added: added}, nil
}

func (i *Interactor) RemoveFromMyTasks(ctx context.Context, taskID string) (bool, error) {
	return i.svc.RemoveFromMyTasks(ctx, taskID)
}

func (i *Interactor) MyTasks(ctx context.Context, input dto.MyTasksInput) ([]dto.MyTaskOutput, error) {
	mine, err := i.svc.MyTasks(ctx, domain.ParseSortOrder(input.SortBy))
	if err != nil {
		return nil, err
	}
	out := make([]dto.MyTaskOutput, 0, len(mine))
	for _, m := range mine {
		out = append(out, toMyTaskOutput(m))
	}
	return out, nil
}

func (i *Interactor) ClearCompleted(ctx context.Context) (int, error) {
	removed, err := i.svc.ClearCompleted(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		i.log.Info().Int("removed", removed).Msg("completed tasks cleared")
	}
	return removed, nil
}

func (i *Interactor) UpdateTrackingState(ctx context.Context, input dto.TrackingUpdateInput) error {
	var state domain.TrackingState
	switch domain.TrackingState(input.State) {
	case domain.TrackingRunning:
		state = domain.TrackingRunning
	case domain.TrackingStopped:
		state = domain.TrackingStopped
	default:
		return fmt.Errorf("%w: unknown tracking state %q", apperrors.ErrInvalidInput, input.State)
	}
	_, err := i.svc.UpdateTrackingState(ctx, input.TaskID, state, input.SessionSeconds)
	return err
}

func (i *Interactor) withMembership(ctx context.Context, tasks []domain.Task) []dto.TaskOutput {
	mine, err := i.svc.MyTasks(ctx, domain.SortNewest)
	if err != nil {
		i.log.Warn().Err(err).Msg("load my tasks")
	}
	listed := make(map[string]struct{}, len(mine))
	for _, m := range mine {
		listed[m.Task.ID] = struct{}{}
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, t := range tasks {
		_, ok := listed[t.ID]
		out = append(out, toTaskOutput(t, ok))
	}
	return out
}

func toTaskOutput(t domain.Task, inMyTasks bool) dto.TaskOutput {
	return dto.TaskOutput{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		URL:         t.URL,
		Status:      t.Status,
		ListName:    t.ListName,
		ProjectName: t.ProjectName,
		TeamID:      t.TeamID,
		InMyTasks:   inMyTasks,
	}
}

func toMyTaskOutput(m domain.MyTask) dto.MyTaskOutput {
	return dto.MyTaskOutput{
		Task:                  toTaskOutput(m.Task, true),
		AddedAt:               m.AddedAt,
		TotalTrackedSeconds:   m.TotalTrackedSeconds,
		TotalTrackedFormatted: timeutil.FormatSeconds(m.TotalTrackedSeconds),
		LastTracked:           m.LastTracked,
		TrackingState:         string(m.TrackingState),
		CurrentSessionSeconds: m.CurrentSessionSeconds,
	}
}
