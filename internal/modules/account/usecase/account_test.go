package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	accountout "cutrack/internal/modules/account/adapter/out"
	"cutrack/internal/modules/account/domain"
	"cutrack/internal/modules/account/dto"
	accountin "cutrack/internal/modules/account/port/in"
	"cutrack/internal/modules/account/service"
	"cutrack/internal/modules/account/usecase"
	apperrors "cutrack/internal/platform/errors"
	"cutrack/internal/platform/kv"
)

type fakeIdentity struct {
	user      domain.User
	userErr   error
	teams     []domain.Team
	teamCalls int
	tokens    []string
}

func (f *fakeIdentity) CurrentUser(_ context.Context, token string) (domain.User, error) {
	f.tokens = append(f.tokens, token)
	if f.userErr != nil {
		return domain.User{}, f.userErr
	}
	return f.user, nil
}

func (f *fakeIdentity) Teams(context.Context, string) ([]domain.Team, error) {
	f.teamCalls++
	return f.teams, nil
}

func newAccount(store *kv.MemoryStore, identity *fakeIdentity) accountin.Usecase {
	svc := service.NewAccountService(accountout.NewKVCredentialStore(store), identity)
	return usecase.NewInteractor(svc, zerolog.Nop())
}

func TestAuthenticatePersistsTrimmedTokenAndIdentity(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &fakeIdentity{user: domain.User{ID: "42", Username: "ada", Email: "ada@example.com"}}
	uc := newAccount(store, identity)

	out, err := uc.Authenticate(context.Background(), dto.AuthenticateInput{Token: "  pk_1234567890  "})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !out.Authenticated || out.UserID != "42" || out.Token != "pk_1234567890" {
		t.Fatalf("unexpected output %+v", out)
	}
	if identity.tokens[0] != "pk_1234567890" {
		t.Fatalf("remote validation must use trimmed token, got %q", identity.tokens[0])
	}
	current, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !current.Authenticated || current.Username != "ada" {
		t.Fatalf("unexpected current %+v", current)
	}
}

func TestAuthenticateRejectsShortTokenWithoutRemoteCall(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &fakeIdentity{}
	uc := newAccount(store, identity)

	_, err := uc.Authenticate(context.Background(), dto.AuthenticateInput{Token: "short"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(identity.tokens) != 0 {
		t.Fatalf("short token must not reach the remote")
	}
}

func TestAuthenticateRemoteRejectionStoresNothing(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &fakeIdentity{userErr: &apperrors.RemoteError{Status: 401, Message: "Token invalid"}}
	uc := newAccount(store, identity)

	_, err := uc.Authenticate(context.Background(), dto.AuthenticateInput{Token: "pk_1234567890"})
	if !errors.Is(err, apperrors.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if store.Has(accountout.TokenKey) || store.Has(accountout.UserKey) {
		t.Fatalf("nothing must be stored after a rejected token")
	}
}

func TestResolveTeamFetchesOnceThenCaches(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &fakeIdentity{user: domain.User{ID: "42"}, teams: []domain.Team{{ID: "t-1", Name: "One"}, {ID: "t-2"}}}
	uc := newAccount(store, identity)
	if _, err := uc.Authenticate(context.Background(), dto.AuthenticateInput{Token: "pk_1234567890"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	for range 3 {
		teamID, err := uc.ResolveTeam(context.Background())
		if err != nil {
			t.Fatalf("resolve team: %v", err)
		}
		if teamID != "t-1" {
			t.Fatalf("expected first team, got %s", teamID)
		}
	}
	if identity.teamCalls != 1 {
		t.Fatalf("expected a single teams request, got %d", identity.teamCalls)
	}
}

func TestResolveTeamWithoutTeams(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &fakeIdentity{user: domain.User{ID: "42"}}
	uc := newAccount(store, identity)
	if _, err := uc.ResolveTeam(context.Background()); !errors.Is(err, apperrors.ErrAuth) {
		t.Fatalf("expected auth error without credential, got %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), dto.AuthenticateInput{Token: "pk_1234567890"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := uc.ResolveTeam(context.Background()); !errors.Is(err, apperrors.ErrNoTeam) {
		t.Fatalf("expected no team error, got %v", err)
	}
}

func TestDisconnectClearsAccountKeys(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	identity := &fakeIdentity{user: domain.User{ID: "42"}, teams: []domain.Team{{ID: "t-1"}}}
	uc := newAccount(store, identity)
	if _, err := uc.Authenticate(context.Background(), dto.AuthenticateInput{Token: "pk_1234567890"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := uc.ResolveTeam(context.Background()); err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	if err := uc.Disconnect(context.Background()); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	for _, key := range []string{accountout.TokenKey, accountout.UserKey, accountout.TeamIDKey} {
		if store.Has(key) {
			t.Fatalf("%s must be deleted", key)
		}
	}
	current, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Authenticated {
		t.Fatalf("expected unauthenticated after disconnect")
	}
}
