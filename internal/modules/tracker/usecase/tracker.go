package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cutrack/internal/modules/tracker/domain"
	trackerdto "cutrack/internal/modules/tracker/dto"
	trackerin "cutrack/internal/modules/tracker/port/in"
	trackerout "cutrack/internal/modules/tracker/port/out"
	"cutrack/internal/modules/tracker/service"
	"cutrack/internal/platform/clock"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/events"
	"cutrack/internal/platform/timeutil"
)

const DefaultTickInterval = time.Second

// Interactor owns the single active session. Start, Stop, Restore and tick
// emission are serialized by opMu; stateMu only guards reads of the session
// so Status stays available to event handlers.
type Interactor struct {
	svc      *service.TrackerService
	resolver trackerout.TaskResolver
	bus      *events.Bus[trackerdto.Event]
	interval time.Duration
	log      zerolog.Logger

	opMu       sync.Mutex
	stateMu    sync.RWMutex
	session    domain.Session
	generation uint64
	ticker     clock.Ticker
	tickDone   chan struct{}
}

func NewInteractor(svc *service.TrackerService, resolver trackerout.TaskResolver, interval time.Duration, logger zerolog.Logger) trackerin.Usecase {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Interactor{
		svc:      svc,
		resolver: resolver,
		bus:      events.NewBus[trackerdto.Event](),
		interval: interval,
		log:      logger,
	}
}

func (i *Interactor) Subscribe(fn func(trackerdto.Event)) func() {
	return i.bus.Subscribe(fn)
}

func (i *Interactor) Start(ctx context.Context, input trackerdto.StartInput) (trackerdto.StartOutput, error) {
	taskID := strings.TrimSpace(input.TaskID)
	if taskID == "" {
		err := fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
		i.fail(err, "start")
		return trackerdto.StartOutput{}, err
	}

	i.opMu.Lock()
	defer i.opMu.Unlock()

	var previous *trackerdto.StopOutput
	if current := i.current(); current.Active() {
		if current.TaskID == taskID {
			return trackerdto.StartOutput{
				SessionID:      current.ID,
				TaskID:         current.TaskID,
				TaskName:       current.TaskName(),
				StartedAt:      current.StartedAt,
				AlreadyRunning: true,
			}, nil
		}
		stopped, err := i.stopLocked(ctx, current)
		previous = &stopped
		if err != nil {
			return trackerdto.StartOutput{Previous: previous}, err
		}
	}

	session := i.svc.NewSession(taskID, i.resolveTask(ctx, taskID, input.TaskName))
	i.setSession(session)
	if err := i.svc.SaveSnapshot(ctx, session); err != nil {
		i.setSession(domain.Session{})
		i.fail(err, "persist session snapshot")
		return trackerdto.StartOutput{Previous: previous}, err
	}
	i.startTicking()

	i.log.Info().Str("session_id", session.ID).Str("task_id", taskID).Msg("session started")
	i.bus.Publish(trackerdto.Event{
		Kind:      trackerdto.EventStarted,
		SessionID: session.ID,
		TaskID:    taskID,
		TaskName:  session.TaskName(),
		StartTime: session.StartedAt,
	})
	return trackerdto.StartOutput{
		SessionID: session.ID,
		TaskID:    taskID,
		TaskName:  session.TaskName(),
		StartedAt: session.StartedAt,
		Previous:  previous,
	}, nil
}

func (i *Interactor) Stop(ctx context.Context, input trackerdto.StopInput) (trackerdto.StopOutput, error) {
	i.opMu.Lock()
	defer i.opMu.Unlock()

	current := i.current()
	if !current.Active() {
		i.fail(apperrors.ErrNoActiveSession, "stop")
		return trackerdto.StopOutput{}, apperrors.ErrNoActiveSession
	}
	if taskID := strings.TrimSpace(input.TaskID); taskID != "" && taskID != current.TaskID {
		err := fmt.Errorf("%w: %s", apperrors.ErrSessionMismatch, taskID)
		i.fail(err, "stop")
		return trackerdto.StopOutput{}, err
	}
	return i.stopLocked(ctx, current)
}

// stopLocked runs the full stop sequence. The session always ends; history
// and snapshot failures are returned after stopped has been published.
func (i *Interactor) stopLocked(ctx context.Context, session domain.Session) (trackerdto.StopOutput, error) {
	i.stopTicking()
	end := i.svc.Now()
	duration := session.ElapsedSeconds(end)

	entryID, remoteErr := i.svc.RecordRemote(ctx, session, end, duration)
	if remoteErr != nil {
		i.log.Warn().Err(remoteErr).Str("session_id", session.ID).Str("task_id", session.TaskID).Msg("remote time entry not created; session kept locally")
		i.bus.Publish(trackerdto.Event{
			Kind:      trackerdto.EventRemoteSyncFailed,
			SessionID: session.ID,
			TaskID:    session.TaskID,
			TaskName:  session.TaskName(),
			StartTime: session.StartedAt,
			EndTime:   end,
			Seconds:   duration,
			Err:       remoteErr,
		})
	}

	var errs []error
	if err := i.svc.AppendHistory(ctx, domain.NewHistoryRecord(session, end, duration, entryID)); err != nil {
		errs = append(errs, fmt.Errorf("append history: %w", err))
	}
	i.setSession(domain.Session{})
	if err := i.svc.DeleteSnapshot(ctx); err != nil {
		errs = append(errs, fmt.Errorf("delete session snapshot: %w", err))
	}

	i.log.Info().Str("session_id", session.ID).Str("task_id", session.TaskID).Int64("duration", duration).Msg("session stopped")
	i.bus.Publish(trackerdto.Event{
		Kind:      trackerdto.EventStopped,
		SessionID: session.ID,
		TaskID:    session.TaskID,
		TaskName:  session.TaskName(),
		StartTime: session.StartedAt,
		EndTime:   end,
		Seconds:   duration,
	})

	out := trackerdto.StopOutput{
		SessionID:       session.ID,
		TaskID:          session.TaskID,
		TaskName:        session.TaskName(),
		StartedAt:       session.StartedAt,
		EndedAt:         end,
		DurationSeconds: duration,
		RemoteEntryID:   entryID,
	}
	if err := errors.Join(errs...); err != nil {
		i.fail(err, "finish session")
		return out, err
	}
	return out, nil
}

// Restore resumes a persisted session. It is a no-op while a session is
// already active in this process.
func (i *Interactor) Restore(ctx context.Context) (trackerdto.RestoreOutput, error) {
	i.opMu.Lock()
	defer i.opMu.Unlock()

	if current := i.current(); current.Active() {
		return trackerdto.RestoreOutput{
			SessionID:       current.ID,
			TaskID:          current.TaskID,
			StartedAt:       current.StartedAt,
			DurationSeconds: current.ElapsedSeconds(i.svc.Now()),
		}, nil
	}

	session, result, err := i.svc.LoadRestorable(ctx)
	if err != nil {
		i.fail(err, "restore session")
		return trackerdto.RestoreOutput{Discarded: result == service.RestoreDiscarded}, err
	}
	switch result {
	case service.RestoreDiscarded:
		i.log.Info().Msg("discarded unusable session snapshot")
		return trackerdto.RestoreOutput{Discarded: true}, nil
	case service.RestoreNone:
		return trackerdto.RestoreOutput{}, nil
	}

	if i.resolver != nil {
		if task, err := i.resolver.Resolve(ctx, session.TaskID); err == nil {
			session.Task = &task
		} else {
			i.log.Debug().Err(err).Str("task_id", session.TaskID).Msg("restored task not resolved")
		}
	}
	i.setSession(session)
	i.startTicking()

	duration := session.ElapsedSeconds(i.svc.Now())
	i.log.Info().Str("session_id", session.ID).Str("task_id", session.TaskID).Int64("duration", duration).Msg("session restored")
	i.bus.Publish(trackerdto.Event{
		Kind:      trackerdto.EventSessionRestored,
		SessionID: session.ID,
		TaskID:    session.TaskID,
		TaskName:  session.TaskName(),
		StartTime: session.StartedAt,
		Seconds:   duration,
	})
	return trackerdto.RestoreOutput{
		Restored:        true,
		SessionID:       session.ID,
		TaskID:          session.TaskID,
		StartedAt:       session.StartedAt,
		DurationSeconds: duration,
	}, nil
}

func (i *Interactor) Status(context.Context) trackerdto.StatusOutput {
	current := i.current()
	if !current.Active() {
		return trackerdto.StatusOutput{ElapsedFormatted: timeutil.FormatSeconds(0)}
	}
	elapsed := current.ElapsedSeconds(i.svc.Now())
	return trackerdto.StatusOutput{
		Active:           true,
		SessionID:        current.ID,
		TaskID:           current.TaskID,
		TaskName:         current.TaskName(),
		StartedAt:        current.StartedAt,
		ElapsedSeconds:   elapsed,
		ElapsedFormatted: timeutil.FormatSeconds(elapsed),
	}
}

func (i *Interactor) History(ctx context.Context, input trackerdto.HistoryInput) ([]trackerdto.HistoryRecordOutput, error) {
	records, err := i.svc.History(ctx, input.Days)
	if err != nil {
		return nil, err
	}
	out := make([]trackerdto.HistoryRecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, trackerdto.HistoryRecordOutput{
			TaskID:        r.TaskID,
			Duration:      r.Duration,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			Date:          r.Date,
			SessionID:     r.SessionID,
			RemoteEntryID: r.RemoteEntryID,
		})
	}
	return out, nil
}

// Close stops ticking and leaves the snapshot in place for the next
// process to restore.
func (i *Interactor) Close() {
	i.opMu.Lock()
	defer i.opMu.Unlock()
	i.stopTicking()
}

func (i *Interactor) current() domain.Session {
	i.stateMu.RLock()
	defer i.stateMu.RUnlock()
	return i.session
}

func (i *Interactor) setSession(s domain.Session) {
	i.stateMu.Lock()
	i.session = s
	i.generation++
	i.stateMu.Unlock()
}

func (i *Interactor) resolveTask(ctx context.Context, taskID, name string) *domain.Task {
	if name = strings.TrimSpace(name); name != "" {
		return &domain.Task{ID: taskID, Name: name}
	}
	if i.resolver == nil {
		return nil
	}
	task, err := i.resolver.Resolve(ctx, taskID)
	if err != nil {
		i.log.Warn().Err(err).Str("task_id", taskID).Msg("resolve task")
		return nil
	}
	return &task
}

func (i *Interactor) fail(err error, op string) {
	i.log.Error().Err(err).Str("op", op).Msg("tracker operation failed")
	i.bus.Publish(trackerdto.Event{Kind: trackerdto.EventError, Err: err})
}

// startTicking must be called with opMu held after the session is set.
func (i *Interactor) startTicking() {
	i.stopTicking()
	i.stateMu.RLock()
	gen := i.generation
	i.stateMu.RUnlock()

	ticker := i.svc.Clock().NewTicker(i.interval)
	done := make(chan struct{})
	i.ticker = ticker
	i.tickDone = done
	go i.runTicker(gen, ticker, done)
}

func (i *Interactor) stopTicking() {
	if i.ticker == nil {
		return
	}
	i.ticker.Stop()
	close(i.tickDone)
	i.ticker = nil
	i.tickDone = nil
}

func (i *Interactor) runTicker(gen uint64, ticker clock.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			i.emitTick(gen)
		}
	}
}

// emitTick drops ticks that lost the race with a stop or a new start.
func (i *Interactor) emitTick(gen uint64) {
	i.opMu.Lock()
	defer i.opMu.Unlock()
	i.stateMu.RLock()
	session := i.session
	current := i.generation == gen && session.Active()
	i.stateMu.RUnlock()
	if !current {
		return
	}
	i.bus.Publish(trackerdto.Event{
		Kind:      trackerdto.EventTick,
		SessionID: session.ID,
		TaskID:    session.TaskID,
		TaskName:  session.TaskName(),
		StartTime: session.StartedAt,
		Seconds:   session.ElapsedSeconds(i.svc.Now()),
	})
}
