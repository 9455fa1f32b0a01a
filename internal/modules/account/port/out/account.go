package out

import (
	"context"

	"cutrack/internal/modules/account/domain"
)

// CredentialStore persists the credential, the identity it belongs to and
// the cached team id. Loads report false when nothing is stored.
type CredentialStore interface {
	LoadToken(ctx context.Context) (string, bool, error)
	SaveToken(ctx context.Context, token string) error
	LoadUser(ctx context.Context) (domain.User, bool, error)
	SaveUser(ctx context.Context, user domain.User) error
	LoadTeamID(ctx context.Context) (string, bool, error)
	SaveTeamID(ctx context.Context, teamID string) error
	Clear(ctx context.Context) error
}

type IdentityGateway interface {
	CurrentUser(ctx context.Context, token string) (domain.User, error)
	Teams(ctx context.Context, token string) ([]domain.Team, error)
}
