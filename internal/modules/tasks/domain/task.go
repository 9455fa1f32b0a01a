package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	ListID      string `json:"listId"`
	ListName    string `json:"listName"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	TeamID      string `json:"teamId"`
}

var completedStatuses = []string{"complete", "closed", "done"}

func (t Task) Completed() bool {
	return slices.Contains(completedStatuses, strings.ToLower(strings.TrimSpace(t.Status)))
}

// Matches is a case-insensitive substring match over name, description,
// list and project. An empty query matches everything.
func (t Task) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{t.Name, t.Description, t.ListName, t.ProjectName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

type TrackingState string

const (
	TrackingStopped TrackingState = "stopped"
	TrackingRunning TrackingState = "running"
)

type MyTask struct {
	Task                  Task          `json:"task"`
	AddedAt               time.Time     `json:"addedAt"`
	TotalTrackedSeconds   int64         `json:"totalTrackedSeconds"`
	LastTracked           *time.Time    `json:"lastTracked,omitempty"`
	TrackingState         TrackingState `json:"trackingState"`
	CurrentSessionSeconds int64         `json:"currentSessionSeconds"`
}

func NewMyTask(task Task, now time.Time) MyTask {
	return MyTask{Task: task, AddedAt: now, TrackingState: TrackingStopped}
}

// ApplyTracking records a tracking transition. A stop with a positive
// session length is added to the accumulated total.
func (m *MyTask) ApplyTracking(state TrackingState, sessionSeconds int64, now time.Time) {
	m.TrackingState = state
	m.CurrentSessionSeconds = sessionSeconds
	if state == TrackingStopped && sessionSeconds > 0 {
		m.TotalTrackedSeconds += sessionSeconds
		tracked := now
		m.LastTracked = &tracked
		m.CurrentSessionSeconds = 0
	}
}

type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortName    SortOrder = "name"
	SortProject SortOrder = "project"
)

func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortName:
		return SortName
	case SortProject:
		return SortProject
	default:
		return SortNewest
	}
}

func SortMyTasks(tasks []MyTask, order SortOrder) {
	slices.SortStableFunc(tasks, func(a, b MyTask) int {
		switch order {
		case SortName:
			return cmp.Compare(strings.ToLower(a.Task.Name), strings.ToLower(b.Task.Name))
		case SortProject:
			return cmp.Compare(strings.ToLower(a.Task.ProjectName), strings.ToLower(b.Task.ProjectName))
		case SortOldest:
			return a.AddedAt.Compare(b.AddedAt)
		default:
			return b.AddedAt.Compare(a.AddedAt)
		}
	})
}

// Dedupe keeps the first occurrence of every task id.
func Dedupe(tasks []Task) []Task {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
