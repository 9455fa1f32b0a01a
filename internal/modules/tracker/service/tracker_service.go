package service

import (
	"context"
	"errors"
	"time"

	"cutrack/internal/modules/tracker/domain"
	trackerout "cutrack/internal/modules/tracker/port/out"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/id"
	"cutrack/internal/platform/timeutil"
)

type RestoreResult int

const (
	RestoreNone RestoreResult = iota
	RestoreDiscarded
	RestoreResumed
)

type TrackerService struct {
	clock      clock.Clock
	idGen      id.Generator
	snapshots  trackerout.SnapshotStore
	history    trackerout.HistoryStore
	recorder   trackerout.EntryRecorder
	staleAfter time.Duration
}

func NewTrackerService(clock clock.Clock, idGen id.Generator, snapshots trackerout.SnapshotStore, history trackerout.HistoryStore, recorder trackerout.EntryRecorder, staleAfter time.Duration) *TrackerService {
	return &TrackerService{
		clock:      clock,
		idGen:      idGen,
		snapshots:  snapshots,
		history:    history,
		recorder:   recorder,
		staleAfter: staleAfter,
	}
}

func (s *TrackerService) Now() time.Time {
	return s.clock.Now()
}

func (s *TrackerService) Clock() clock.Clock {
	return s.clock
}

func (s *TrackerService) NewSession(taskID string, task *domain.Task) domain.Session {
	return domain.Session{
		ID:        s.idGen.New(),
		TaskID:    taskID,
		Task:      task,
		StartedAt: s.clock.Now(),
	}
}

func (s *TrackerService) SaveSnapshot(ctx context.Context, session domain.Session) error {
	return s.snapshots.Save(ctx, domain.NewSnapshot(session, s.clock.Now()))
}

func (s *TrackerService) DeleteSnapshot(ctx context.Context) error {
	return s.snapshots.Delete(ctx)
}

// LoadRestorable reads the snapshot and decides whether it can be resumed.
// Snapshots that cannot be decoded, are stale, or claim a running session
// without a task or start time are deleted. Only a failed read of the store
// is returned as an error.
func (s *TrackerService) LoadRestorable(ctx context.Context) (domain.Session, RestoreResult, error) {
	snap, ok, err := s.snapshots.Load(ctx)
	switch {
	case errors.Is(err, apperrors.ErrUndecodable):
		return s.discard(ctx)
	case err != nil:
		return domain.Session{}, RestoreNone, err
	case !ok || !snap.IsRunning:
		return domain.Session{}, RestoreNone, nil
	case !snap.Resumable(), snap.Stale(s.clock.Now(), s.staleAfter):
		return s.discard(ctx)
	}
	sessionID := snap.SessionID
	if sessionID == "" {
		sessionID = s.idGen.New()
	}
	return domain.Session{
		ID:        sessionID,
		TaskID:    snap.CurrentTaskID,
		StartedAt: snap.StartTime,
	}, RestoreResumed, nil
}

func (s *TrackerService) discard(ctx context.Context) (domain.Session, RestoreResult, error) {
	if err := s.snapshots.Delete(ctx); err != nil {
		return domain.Session{}, RestoreDiscarded, err
	}
	return domain.Session{}, RestoreDiscarded, nil
}

func (s *TrackerService) RecordRemote(ctx context.Context, session domain.Session, end time.Time, duration int64) (string, error) {
	return s.recorder.Record(ctx, session.TaskID, session.StartedAt, end, domain.Description(duration))
}

func (s *TrackerService) AppendHistory(ctx context.Context, record domain.HistoryRecord) error {
	return s.history.Append(ctx, record)
}

// History returns records ending within the last days calendar days,
// oldest first. days <= 0 returns everything.
func (s *TrackerService) History(ctx context.Context, days int) ([]domain.HistoryRecord, error) {
	records, err := s.history.List(ctx)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return records, nil
	}
	cutoff := timeutil.StartOfDay(s.clock.Now()).AddDate(0, 0, -(days - 1))
	out := make([]domain.HistoryRecord, 0, len(records))
	for _, r := range records {
		if !r.EndTime.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}
