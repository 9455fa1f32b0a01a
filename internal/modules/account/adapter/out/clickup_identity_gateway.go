package out

import (
	"context"

	"cutrack/internal/modules/account/domain"
	accountout "cutrack/internal/modules/account/port/out"
	"cutrack/internal/platform/clickup"
)

type ClickUpIdentityGateway struct {
	client *clickup.Client
}

func NewClickUpIdentityGateway(client *clickup.Client) accountout.IdentityGateway {
	return &ClickUpIdentityGateway{client: client}
}

func (g *ClickUpIdentityGateway) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	u, err := g.client.CurrentUser(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:             string(u.ID),
		Username:       u.Username,
		Email:          u.Email,
		Initials:       u.Initials,
		ProfilePicture: u.ProfilePicture,
	}, nil
}

func (g *ClickUpIdentityGateway) Teams(ctx context.Context, token string) ([]domain.Team, error) {
	raw, err := g.client.Teams(ctx, token)
	if err != nil {
		return nil, err
	}
	teams := make([]domain.Team, 0, len(raw))
	for _, t := range raw {
		teams = append(teams, domain.Team{ID: string(t.ID), Name: t.Name})
	}
	return teams, nil
}
