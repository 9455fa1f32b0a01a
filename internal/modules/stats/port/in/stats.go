package in

import (
	"context"

	"cutrack/internal/modules/stats/dto"
)

type Usecase interface {
	// GetProductivityStats never fails; remote problems fall back to the
	// local history and unreadable history yields zero totals.
	GetProductivityStats(ctx context.Context) dto.StatisticsOutput
}
