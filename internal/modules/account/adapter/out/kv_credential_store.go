package out

import (
	"context"
	"errors"

	"cutrack/internal/modules/account/domain"
	accountout "cutrack/internal/modules/account/port/out"
	"cutrack/internal/platform/kv"
)

const (
	TokenKey  = "clickup_api_token"
	UserKey   = "clickup_user"
	TeamIDKey = "clickup_team_id"
)

type KVCredentialStore struct {
	store kv.Store
}

func NewKVCredentialStore(store kv.Store) accountout.CredentialStore {
	return &KVCredentialStore{store: store}
}

func (s *KVCredentialStore) LoadToken(ctx context.Context) (string, bool, error) {
	return s.loadString(ctx, TokenKey)
}

func (s *KVCredentialStore) SaveToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, TokenKey, token)
}

func (s *KVCredentialStore) LoadUser(ctx context.Context) (domain.User, bool, error) {
	var user domain.User
	ok, err := s.store.Get(ctx, UserKey, &user)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	return user, user.ID != "", nil
}

func (s *KVCredentialStore) SaveUser(ctx context.Context, user domain.User) error {
	return s.store.Set(ctx, UserKey, user)
}

func (s *KVCredentialStore) LoadTeamID(ctx context.Context) (string, bool, error) {
	return s.loadString(ctx, TeamIDKey)
}

func (s *KVCredentialStore) SaveTeamID(ctx context.Context, teamID string) error {
	return s.store.Set(ctx, TeamIDKey, teamID)
}

// Clear removes every key it can and reports all failures together.
func (s *KVCredentialStore) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{TokenKey, UserKey, TeamIDKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *KVCredentialStore) loadString(ctx context.Context, key string) (string, bool, error) {
	var value string
	ok, err := s.store.Get(ctx, key, &value)
	if err != nil || !ok {
		return "", false, err
	}
	return value, value != "", nil
}
