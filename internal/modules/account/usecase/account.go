package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"cutrack/internal/modules/account/domain"
	"cutrack/internal/modules/account/dto"
	accountin "cutrack/internal/modules/account/port/in"
	"cutrack/internal/modules/account/service"
)

type Interactor struct {
	svc *service.AccountService
	log zerolog.Logger
}

func NewInteractor(svc *service.AccountService, logger zerolog.Logger) accountin.Usecase {
	return &Interactor{svc: svc, log: logger}
}

func (i *Interactor) Authenticate(ctx context.Context, input dto.AuthenticateInput) (dto.AccountOutput, error) {
	token, user, err := i.svc.Authenticate(ctx, input.Token)
	if err != nil {
		i.log.Warn().Err(err).Msg("authentication failed")
		return dto.AccountOutput{}, err
	}
	i.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("authenticated")
	return toOutput(token, user, true), nil
}

func (i *Interactor) Disconnect(ctx context.Context) error {
	if err := i.svc.Disconnect(ctx); err != nil {
		return err
	}
	i.log.Info().Msg("disconnected")
	return nil
}

func (i *Interactor) Current(ctx context.Context) (dto.AccountOutput, error) {
	token, user, ok, err := i.svc.Current(ctx)
	if err != nil {
		return dto.AccountOutput{}, err
	}
	return toOutput(token, user, ok), nil
}

func (i *Interactor) ResolveTeam(ctx context.Context) (string, error) {
	return i.svc.ResolveTeam(ctx)
}

func (i *Interactor) Teams(ctx context.Context) ([]dto.TeamOutput, error) {
	teams, err := i.svc.Teams(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamOutput, 0, len(teams))
	for _, t := range teams {
		out = append(out, dto.TeamOutput{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

func toOutput(token string, user domain.User, authenticated bool) dto.AccountOutput {
	return dto.AccountOutput{
		Authenticated:  authenticated,
		Token:          token,
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Initials:       user.Initials,
		ProfilePicture: user.ProfilePicture,
	}
}
