package out

import (
	"context"

	accountin "cutrack/internal/modules/account/port/in"
	tasksout "cutrack/internal/modules/tasks/port/out"
	apperrors "cutrack/internal/platform/errors"
)

// AccountCredentials resolves task query credentials from the account module.
type AccountCredentials struct {
	account accountin.Usecase
}

func NewAccountCredentials(account accountin.Usecase) tasksout.CredentialSource {
	return &AccountCredentials{account: account}
}

func (a *AccountCredentials) Identity(ctx context.Context) (tasksout.Identity, error) {
	current, err := a.account.Current(ctx)
	if err != nil {
		return tasksout.Identity{}, err
	}
	if !current.Authenticated {
		return tasksout.Identity{}, apperrors.ErrAuth
	}
	return tasksout.Identity{Token: current.Token, UserID: current.UserID}, nil
}

func (a *AccountCredentials) TeamIDs(ctx context.Context) ([]string, error) {
	teams, err := a.account.Teams(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids, nil
}
