package dto

import "time"

type EventKind string

const (
	EventStarted          EventKind = "started"
	EventStopped          EventKind = "stopped"
	EventTick             EventKind = "tick"
	EventSessionRestored  EventKind = "sessionRestored"
	EventError            EventKind = "error"
	EventRemoteSyncFailed EventKind = "remoteSyncFailed"
)

// Event is a session lifecycle notification. Seconds carries the elapsed
// time for tick, the duration for stopped and sessionRestored.
type Event struct {
	Kind      EventKind
	SessionID string
	TaskID    string
	TaskName  string
	StartTime time.Time
	EndTime   time.Time
	Seconds   int64
	Err       error
}

type StartInput struct {
	TaskID   string
	TaskName string
}

type StartOutput struct {
	SessionID      string
	TaskID         string
	TaskName       string
	StartedAt      time.Time
	AlreadyRunning bool
	Previous       *StopOutput
}

type StopInput struct {
	TaskID string
}

type StopOutput struct {
	SessionID       string
	TaskID          string
	TaskName        string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int64
	RemoteEntryID   string
}

type RestoreOutput struct {
	Restored        bool
	Discarded       bool
	SessionID       string
	TaskID          string
	StartedAt       time.Time
	DurationSeconds int64
}

type StatusOutput struct {
	Active           bool
	SessionID        string
	TaskID           string
	TaskName         string
	StartedAt        time.Time
	ElapsedSeconds   int64
	ElapsedFormatted string
}

type HistoryInput struct {
	// Days limits records to the last N calendar days; zero returns all.
	Days int
}

type HistoryRecordOutput struct {
	TaskID        string
	Duration      int64
	StartTime     time.Time
	EndTime       time.Time
	Date          string
	SessionID     string
	RemoteEntryID string
}
