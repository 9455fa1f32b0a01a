package service

import (
	"context"
	"fmt"

	"cutrack/internal/modules/account/domain"
	accountout "cutrack/internal/modules/account/port/out"
	apperrors "cutrack/internal/platform/errors"
)

type AccountService struct {
	store   accountout.CredentialStore
	gateway accountout.IdentityGateway
}

func NewAccountService(store accountout.CredentialStore, gateway accountout.IdentityGateway) *AccountService {
	return &AccountService{store: store, gateway: gateway}
}

// Authenticate validates token remotely and persists it with its identity.
// Nothing is stored when validation fails.
func (s *AccountService) Authenticate(ctx context.Context, token string) (string, domain.User, error) {
	token, err := domain.NormalizeToken(token)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	user, err := s.gateway.CurrentUser(ctx, token)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("validate token: %w", err)
	}
	if err := s.store.SaveToken(ctx, token); err != nil {
		return "", domain.User{}, err
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

func (s *AccountService) Disconnect(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *AccountService) Current(ctx context.Context) (string, domain.User, bool, error) {
	token, hasToken, err := s.store.LoadToken(ctx)
	if err != nil {
		return "", domain.User{}, false, err
	}
	user, hasUser, err := s.store.LoadUser(ctx)
	if err != nil {
		return "", domain.User{}, false, err
	}
	return token, user, hasToken && hasUser && token != "", nil
}

func (s *AccountService) Token(ctx context.Context) (string, error) {
	token, ok, err := s.store.LoadToken(ctx)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", apperrors.ErrAuth
	}
	return token, nil
}

// ResolveTeam returns the cached team id, or the first accessible team
// which is then cached.
func (s *AccountService) ResolveTeam(ctx context.Context) (string, error) {
	teamID, ok, err := s.store.LoadTeamID(ctx)
	if err != nil {
		return "", err
	}
	if ok && teamID != "" {
		return teamID, nil
	}
	teams, err := s.Teams(ctx)
	if err != nil {
		return "", err
	}
	if len(teams) == 0 {
		return "", apperrors.ErrNoTeam
	}
	teamID = teams[0].ID
	if err := s.store.SaveTeamID(ctx, teamID); err != nil {
		return "", err
	}
	return teamID, nil
}

func (s *AccountService) Teams(ctx context.Context) ([]domain.Team, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.gateway.Teams(ctx, token)
}
