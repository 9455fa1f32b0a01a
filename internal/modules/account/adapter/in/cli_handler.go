package in

import (
	"context"

	accountdto "cutrack/internal/modules/account/dto"
	accountin "cutrack/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, token string) (accountdto.AccountOutput, error) {
	return h.usecase.Authenticate(ctx, accountdto.AuthenticateInput{Token: token})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Disconnect(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (accountdto.AccountOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Teams(ctx context.Context) ([]accountdto.TeamOutput, error) {
	return h.usecase.Teams(ctx)
}

func (h CLIHandler) Team(ctx context.Context) (string, error) {
	return h.usecase.ResolveTeam(ctx)
}
