package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	tasksin "cutrack/internal/modules/tasks/adapter/in"
	tasksout "cutrack/internal/modules/tasks/adapter/out"
	"cutrack/internal/modules/tasks/domain"
	"cutrack/internal/modules/tasks/dto"
	tasksport "cutrack/internal/modules/tasks/port/in"
	portout "cutrack/internal/modules/tasks/port/out"
	"cutrack/internal/modules/tasks/service"
	"cutrack/internal/modules/tasks/usecase"
	trackerdto "cutrack/internal/modules/tracker/dto"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/kv"
)

var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type fakeGateway struct {
	byTeam    map[string][]domain.Task
	teamErr   map[string]error
	remote    map[string]domain.Task
	taskCalls int
	users     []string
}

func (f *fakeGateway) AssignedTasks(_ context.Context, _, teamID, userID string) ([]domain.Task, error) {
	f.users = append(f.users, userID)
	if err := f.teamErr[teamID]; err != nil {
		return nil, err
	}
	return f.byTeam[teamID], nil
}

func (f *fakeGateway) Task(_ context.Context, _, taskID string) (domain.Task, error) {
	f.taskCalls++
	task, ok := f.remote[taskID]
	if !ok {
		return domain.Task{}, &apperrors.RemoteError{Status: 404, Message: "Task not found"}
	}
	return task, nil
}

type fakeCredentials struct {
	teams []string
	err   error
}

func (f fakeCredentials) Identity(context.Context) (portout.Identity, error) {
	if f.err != nil {
		return portout.Identity{}, f.err
	}
	return portout.Identity{Token: "pk_1234567890", UserID: "42"}, nil
}

func (f fakeCredentials) TeamIDs(context.Context) ([]string, error) {
	return f.teams, nil
}

func newTasks(gw *fakeGateway, creds fakeCredentials, clk *clock.Fake) (tasksport.Usecase, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	svc := service.NewTasksService(clk, gw, tasksout.NewKVMyTaskStore(store), creds)
	return usecase.NewInteractor(svc, zerolog.Nop()), store
}

func TestListAssignedDeduplicatesAcrossTeams(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{
		byTeam: map[string][]domain.Task{
			"a": {{ID: "1", Name: "One"}, {ID: "2", Name: "Two"}},
			"b": {{ID: "2", Name: "Two again"}, {ID: "3", Name: "Three"}},
		},
		teamErr: map[string]error{"c": &apperrors.RemoteError{Status: 500}},
	}
	uc, _ := newTasks(gw, fakeCredentials{teams: []string{"a", "b", "c"}}, clock.NewFake(now))

	tasks, err := uc.ListAssigned(context.Background())
	if err != nil {
		t.Fatalf("list assigned: %v", err)
	}
	if len(tasks) != 3 || tasks[1].Name != "Two" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	for _, u := range gw.users {
		if u != "42" {
			t.Fatalf("tasks must be filtered by the current user, got %s", u)
		}
	}
}

func TestListAssignedFailsWhenEveryTeamFails(t *testing.T) {
	t.Parallel()
	remote := &apperrors.RemoteError{Status: 401}
	gw := &fakeGateway{teamErr: map[string]error{"a": remote}}
	uc, _ := newTasks(gw, fakeCredentials{teams: []string{"a"}}, clock.NewFake(now))
	if _, err := uc.ListAssigned(context.Background()); !errors.Is(err, apperrors.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	uc, _ = newTasks(gw, fakeCredentials{}, clock.NewFake(now))
	if _, err := uc.ListAssigned(context.Background()); !errors.Is(err, apperrors.ErrNoTeam) {
		t.Fatalf("expected no team error, got %v", err)
	}
}

func TestSearchMatchesListAndProject(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{byTeam: map[string][]domain.Task{
		"a": {{ID: "1", Name: "Write", ListName: "Docs"}, {ID: "2", Name: "Fix", ProjectName: "Billing"}},
	}}
	uc, _ := newTasks(gw, fakeCredentials{teams: []string{"a"}}, clock.NewFake(now))
	found, err := uc.Search(context.Background(), "billing")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != "2" {
		t.Fatalf("unexpected search result %+v", found)
	}
}

func TestMyTasksLifecycle(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(now)
	gw := &fakeGateway{remote: map[string]domain.Task{
		"1": {ID: "1", Name: "Alpha", Status: "open"},
		"2": {ID: "2", Name: "Beta", Status: "Done"},
	}}
	uc, store := newTasks(gw, fakeCredentials{teams: []string{"a"}}, clk)
	ctx := context.Background()

	added, err := uc.AddToMyTasks(ctx, "1")
	if err != nil || !added.Added {
		t.Fatalf("add 1: %+v %v", added, err)
	}
	clk.Advance(time.Minute)
	if _, err := uc.AddToMyTasks(ctx, "2"); err != nil {
		t.Fatalf("add 2: %v", err)
	}
	again, err := uc.AddToMyTasks(ctx, "1")
	if err != nil || again.Added {
		t.Fatalf("second add must report existing entry: %+v %v", again, err)
	}
	if !store.Has(tasksout.MyTasksKey) {
		t.Fatalf("my tasks must be persisted")
	}

	task, err := uc.GetTask(ctx, "1")
	if err != nil || task.Name != "Alpha" {
		t.Fatalf("get task: %+v %v", task, err)
	}
	if gw.taskCalls != 2 {
		t.Fatalf("listed tasks must be served locally, got %d remote calls", gw.taskCalls)
	}
	if _, err := uc.AddToMyTasks(ctx, "missing"); err == nil {
		t.Fatalf("unknown task must fail")
	}

	mine, err := uc.MyTasks(ctx, dto.MyTasksInput{})
	if err != nil || len(mine) != 2 || mine[0].Task.ID != "2" {
		t.Fatalf("expected newest first: %+v %v", mine, err)
	}

	removed, err := uc.ClearCompleted(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("clear completed: %d %v", removed, err)
	}
	ok, err := uc.RemoveFromMyTasks(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("remove: %v %v", ok, err)
	}
	ok, err = uc.RemoveFromMyTasks(ctx, "1")
	if err != nil || ok {
		t.Fatalf("second remove must report false: %v %v", ok, err)
	}
}

func TestTrackerListenerAccumulatesTrackedTime(t *testing.T) {
	t.Parallel()
	clk := clock.NewFake(now)
	gw := &fakeGateway{remote: map[string]domain.Task{"1": {ID: "1", Name: "Alpha"}}}
	uc, _ := newTasks(gw, fakeCredentials{teams: []string{"a"}}, clk)
	ctx := context.Background()
	if _, err := uc.AddToMyTasks(ctx, "1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	listener := tasksin.NewTrackerListener(uc, zerolog.Nop())

	listener.Handle(trackerdto.Event{Kind: trackerdto.EventStarted, TaskID: "1"})
	mine, _ := uc.MyTasks(ctx, dto.MyTasksInput{})
	if mine[0].TrackingState != "running" {
		t.Fatalf("expected running state, got %s", mine[0].TrackingState)
	}

	clk.Advance(time.Hour)
	listener.Handle(trackerdto.Event{Kind: trackerdto.EventTick, TaskID: "1", Seconds: 5})
	listener.Handle(trackerdto.Event{Kind: trackerdto.EventStopped, TaskID: "1", Seconds: 3600})
	listener.Handle(trackerdto.Event{Kind: trackerdto.EventStarted, TaskID: "1"})
	listener.Handle(trackerdto.Event{Kind: trackerdto.EventStopped, TaskID: "1", Seconds: 60})
	listener.Handle(trackerdto.Event{Kind: trackerdto.EventStopped, TaskID: "not-listed", Seconds: 60})

	mine, err := uc.MyTasks(ctx, dto.MyTasksInput{})
	if err != nil {
		t.Fatalf("my tasks: %v", err)
	}
	got := mine[0]
	if got.TrackingState != "stopped" || got.TotalTrackedSeconds != 3660 || got.TotalTrackedFormatted != "01:01:00" {
		t.Fatalf("unexpected accumulated state %+v", got)
	}
	if got.LastTracked == nil || !got.LastTracked.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected last tracked %v", got.LastTracked)
	}
}

func TestUpdateTrackingStateRejectsUnknownState(t *testing.T) {
	t.Parallel()
	uc, _ := newTasks(&fakeGateway{}, fakeCredentials{}, clock.NewFake(now))
	err := uc.UpdateTrackingState(context.Background(), dto.TrackingUpdateInput{TaskID: "1", State: "paused"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
