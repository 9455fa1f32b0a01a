package in

import (
	"context"

	statsdto "cutrack/internal/modules/stats/dto"
	statsin "cutrack/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Productivity(ctx context.Context) statsdto.StatisticsOutput {
	return h.usecase.GetProductivityStats(ctx)
}
