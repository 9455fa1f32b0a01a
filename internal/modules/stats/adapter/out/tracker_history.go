package out

import (
	"context"

	"cutrack/internal/modules/stats/domain"
	statsout "cutrack/internal/modules/stats/port/out"
	trackerdto "cutrack/internal/modules/tracker/dto"
	trackerin "cutrack/internal/modules/tracker/port/in"
)

type TrackerHistory struct {
	tracker trackerin.Usecase
}

func NewTrackerHistory(tracker trackerin.Usecase) statsout.LocalHistory {
	return &TrackerHistory{tracker: tracker}
}

func (h *TrackerHistory) Records(ctx context.Context) ([]domain.Record, error) {
	history, err := h.tracker.History(ctx, trackerdto.HistoryInput{})
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(history))
	for _, r := range history {
		records = append(records, domain.Record{Date: r.Date, Duration: r.Duration})
	}
	return records, nil
}
