package out

import (
	"context"

	"cutrack/internal/modules/stats/domain"
)

type Identity struct {
	Token  string
	UserID string
}

type AccountSource interface {
	// Identity reports false when no credential or user is stored.
	Identity(ctx context.Context) (Identity, bool, error)
	ResolveTeam(ctx context.Context) (string, error)
}

type RemoteTotals interface {
	Totals(ctx context.Context, identity Identity, teamID string) (domain.Statistics, error)
}

type LocalHistory interface {
	Records(ctx context.Context) ([]domain.Record, error)
}

type Cache interface {
	Save(ctx context.Context, cached domain.Cached) error
}
