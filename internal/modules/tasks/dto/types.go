package dto

import "time"

type TaskOutput struct {
	ID          string
	Name        string
	Description string
	URL         string
	Status      string
	ListName    string
	ProjectName string
	TeamID      string
	InMyTasks   bool
}

type MyTaskOutput struct {
	Task                  TaskOutput
	AddedAt               time.Time
	TotalTrackedSeconds   int64
	TotalTrackedFormatted string
	LastTracked           *time.Time
	TrackingState         string
	CurrentSessionSeconds int64
}

type MyTasksInput struct {
	SortBy string
}

type AddOutput struct {
	Task  MyTaskOutput
	Added bool
}

type TrackingUpdateInput struct {
	TaskID         string
	State          string
	SessionSeconds int64
}
