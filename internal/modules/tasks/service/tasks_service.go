package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cutrack/internal/modules/tasks/domain"
	tasksout "cutrack/internal/modules/tasks/port/out"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
)

type TasksService struct {
	clock       clock.Clock
	gateway     tasksout.TaskGateway
	store       tasksout.MyTaskStore
	credentials tasksout.CredentialSource
}

func NewTasksService(clock clock.Clock, gateway tasksout.TaskGateway, store tasksout.MyTaskStore, credentials tasksout.CredentialSource) *TasksService {
	return &TasksService{clock: clock, gateway: gateway, store: store, credentials: credentials}
}

// ListAssigned queries every accessible team for open tasks assigned to the
// current user. A team that fails is skipped unless every team fails.
func (s *TasksService) ListAssigned(ctx context.Context) ([]domain.Task, error) {
	identity, err := s.credentials.Identity(ctx)
	if err != nil {
		return nil, err
	}
	teamIDs, err := s.credentials.TeamIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return nil, apperrors.ErrNoTeam
	}
	var (
		all  []domain.Task
		errs []error
	)
	for _, teamID := range teamIDs {
		tasks, err := s.gateway.AssignedTasks(ctx, identity.Token, teamID, identity.UserID)
		if err != nil {
			errs = append(errs, fmt.Errorf("team %s: %w", teamID, err))
			continue
		}
		all = append(all, tasks...)
	}
	if len(errs) == len(teamIDs) {
		return nil, errors.Join(errs...)
	}
	return domain.Dedupe(all), nil
}

func (s *TasksService) Search(ctx context.Context, query string) ([]domain.Task, error) {
	tasks, err := s.ListAssigned(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetTask prefers the locally kept copy from the personal list.
func (s *TasksService) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return domain.Task{}, fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	mine, err := s.store.Load(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	for _, m := range mine {
		if m.Task.ID == taskID {
			return m.Task, nil
		}
	}
	identity, err := s.credentials.Identity(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	return s.gateway.Task(ctx, identity.Token, taskID)
}

func (s *TasksService) MyTasks(ctx context.Context, order domain.SortOrder) ([]domain.MyTask, error) {
	mine, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortMyTasks(mine, order)
	return mine, nil
}

// AddToMyTasks reports false with the existing entry when the task is
// already listed.
func (s *TasksService) AddToMyTasks(ctx context.Context, taskID string) (domain.MyTask, bool, error) {
	mine, err := s.store.Load(ctx)
	if err != nil {
		return domain.MyTask{}, false, err
	}
	for _, m := range mine {
		if m.Task.ID == taskID {
			return m, false, nil
		}
	}
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return domain.MyTask{}, false, err
	}
	added := domain.NewMyTask(task, s.clock.Now())
	if err := s.store.Save(ctx, append(mine, added)); err != nil {
		return domain.MyTask{}, false, err
	}
	return added, true, nil
}

func (s *TasksService) RemoveFromMyTasks(ctx context.Context, taskID string) (bool, error) {
	mine, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]domain.MyTask, 0, len(mine))
	for _, m := range mine {
		if m.Task.ID != taskID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(mine) {
		return false, nil
	}
	return true, s.store.Save(ctx, kept)
}

func (s *TasksService) ClearCompleted(ctx context.Context) (int, error) {
	mine, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]domain.MyTask, 0, len(mine))
	for _, m := range mine {
		if !m.Task.Completed() {
			kept = append(kept, m)
		}
	}
	removed := len(mine) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.store.Save(ctx, kept)
}

// UpdateTrackingState ignores tasks outside the personal list.
func (s *TasksService) UpdateTrackingState(ctx context.Context, taskID string, state domain.TrackingState, sessionSeconds int64) (bool, error) {
	mine, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range mine {
		if mine[i].Task.ID == taskID {
			mine[i].ApplyTracking(state, sessionSeconds, s.clock.Now())
			return true, s.store.Save(ctx, mine)
		}
	}
	return false, nil
}
