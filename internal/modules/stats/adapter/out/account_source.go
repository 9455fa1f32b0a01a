package out

import (
	"context"

	accountin "cutrack/internal/modules/account/port/in"
	statsout "cutrack/internal/modules/stats/port/out"
)

type AccountSource struct {
	account accountin.Usecase
}

func NewAccountSource(account accountin.Usecase) statsout.AccountSource {
	return &AccountSource{account: account}
}

func (a *AccountSource) Identity(ctx context.Context) (statsout.Identity, bool, error) {
	current, err := a.account.Current(ctx)
	if err != nil {
		return statsout.Identity{}, false, err
	}
	if !current.Authenticated || current.UserID == "" {
		return statsout.Identity{}, false, nil
	}
	return statsout.Identity{Token: current.Token, UserID: current.UserID}, true, nil
}

func (a *AccountSource) ResolveTeam(ctx context.Context) (string, error) {
	return a.account.ResolveTeam(ctx)
}
