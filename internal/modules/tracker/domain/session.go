package domain

import (
	"time"

	"cutrack/internal/platform/timeutil"
)

const DescriptionSource = "cutrack"

// Task is the snapshot of the tracked task taken at start.
type Task struct {
	ID   string
	Name string
}

// Session is the in-memory active session. The zero value is idle.
type Session struct {
	ID        string
	TaskID    string
	Task      *Task
	StartedAt time.Time
}

func (s Session) Active() bool {
	return s.TaskID != "" && !s.StartedAt.IsZero()
}

func (s Session) ElapsedSeconds(now time.Time) int64 {
	if !s.Active() {
		return 0
	}
	return timeutil.ElapsedSeconds(s.StartedAt, now)
}

func (s Session) TaskName() string {
	if s.Task == nil {
		return ""
	}
	return s.Task.Name
}

// Snapshot is the persisted form of a running session.
type Snapshot struct {
	IsRunning     bool      `json:"isRunning"`
	CurrentTaskID string    `json:"currentTaskId"`
	StartTime     time.Time `json:"startTime"`
	LastSaved     time.Time `json:"lastSaved"`
	SessionID     string    `json:"sessionId,omitempty"`
}

func NewSnapshot(s Session, now time.Time) Snapshot {
	return Snapshot{
		IsRunning:     true,
		CurrentTaskID: s.TaskID,
		StartTime:     s.StartedAt,
		LastSaved:     now,
		SessionID:     s.ID,
	}
}

// Resumable reports whether the snapshot describes a running session.
func (s Snapshot) Resumable() bool {
	return s.IsRunning && s.CurrentTaskID != "" && !s.StartTime.IsZero()
}

// Stale is true once more than window has passed since the last save.
func (s Snapshot) Stale(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastSaved) > window
}

type HistoryRecord struct {
	TaskID        string    `json:"taskId"`
	Duration      int64     `json:"duration"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Date          string    `json:"date"`
	SessionID     string    `json:"sessionId,omitempty"`
	RemoteEntryID string    `json:"remoteEntryId,omitempty"`
}

// LocalOnly marks sessions whose remote entry was never written.
func (r HistoryRecord) LocalOnly() bool {
	return r.RemoteEntryID == ""
}

func NewHistoryRecord(s Session, end time.Time, duration int64, remoteEntryID string) HistoryRecord {
	return HistoryRecord{
		TaskID:        s.TaskID,
		Duration:      duration,
		StartTime:     s.StartedAt,
		EndTime:       end,
		Date:          timeutil.DateKey(end),
		SessionID:     s.ID,
		RemoteEntryID: remoteEntryID,
	}
}

// AppendCapped appends rec and drops the oldest records beyond limit.
func AppendCapped(records []HistoryRecord, rec HistoryRecord, limit int) []HistoryRecord {
	records = append(records, rec)
	if limit > 0 && len(records) > limit {
		records = append([]HistoryRecord(nil), records[len(records)-limit:]...)
	}
	return records
}

func Description(seconds int64) string {
	return "Session of " + timeutil.FormatSeconds(seconds) + " from " + DescriptionSource
}
