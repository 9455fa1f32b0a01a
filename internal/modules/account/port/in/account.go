package in

import (
	"context"

	"cutrack/internal/modules/account/dto"
)

type Usecase interface {
	Authenticate(ctx context.Context, input dto.AuthenticateInput) (dto.AccountOutput, error)
	Disconnect(ctx context.Context) error
	Current(ctx context.Context) (dto.AccountOutput, error)
	ResolveTeam(ctx context.Context) (string, error)
	Teams(ctx context.Context) ([]dto.TeamOutput, error)
}
