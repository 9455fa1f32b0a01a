package in

import (
	"context"

	"github.com/rs/zerolog"

	tasksdto "cutrack/internal/modules/tasks/dto"
	tasksin "cutrack/internal/modules/tasks/port/in"
	trackerdto "cutrack/internal/modules/tracker/dto"
)

// TrackerListener mirrors session lifecycle events onto the personal task
// list. Failures are logged; the session itself is never affected.
type TrackerListener struct {
	usecase tasksin.Usecase
	log     zerolog.Logger
}

func NewTrackerListener(usecase tasksin.Usecase, logger zerolog.Logger) TrackerListener {
	return TrackerListener{usecase: usecase, log: logger}
}

func (l TrackerListener) Handle(event trackerdto.Event) {
	var input tasksdto.TrackingUpdateInput
	switch event.Kind {
	case trackerdto.EventStarted, trackerdto.EventSessionRestored:
		input = tasksdto.TrackingUpdateInput{TaskID: event.TaskID, State: "running", SessionSeconds: event.Seconds}
	case trackerdto.EventStopped:
		input = tasksdto.TrackingUpdateInput{TaskID: event.TaskID, State: "stopped", SessionSeconds: event.Seconds}
	default:
		return
	}
	if err := l.usecase.UpdateTrackingState(context.Background(), input); err != nil {
		l.log.Warn().Err(err).Str("task_id", event.TaskID).Str("event", string(event.Kind)).Msg("update task tracking state")
	}
}
