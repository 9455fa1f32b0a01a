package clickup_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutrack/internal/platform/clickup"
	apperrors "cutrack/internal/platform/errors"
)

func newClient(t *testing.T, handler http.HandlerFunc) *clickup.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return clickup.New(srv.URL+"/api/v2/", srv.Client(), zerolog.Nop())
}

func TestDoRejectsMissingToken(t *testing.T) {
	called := false
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	_, err := client.CurrentUser(context.Background(), "  ")
	require.ErrorIs(t, err, apperrors.ErrAuth)
	assert.False(t, called)
}

func TestCurrentUserSendsRawTokenAndDecodesNumericID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/user", r.URL.Path)
		assert.Equal(t, "pk_123_secret", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"user":{"id":4242,"username":"ada","email":"ada@example.com","initials":"A"}}`)
	})
	user, err := client.CurrentUser(context.Background(), "pk_123_secret")
	require.NoError(t, err)
	assert.Equal(t, clickup.ID("4242"), user.ID)
	assert.Equal(t, "ada", user.Username)
}

func TestTimeEntriesQueryAndFlexibleDurations(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/team/team-1/time_entries", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2000", r.URL.Query().Get("end_date"))
		assert.Equal(t, "77", r.URL.Query().Get("user_id"))
		_, _ = io.WriteString(w, `{"data":[{"id":"a","duration":"1000"},{"id":"b","duration":-500},{"id":"c","duration":2000}]}`)
	})
	entries, err := client.TimeEntries(context.Background(), "tok", "team-1", 1000, 2000, "77")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, clickup.Millis(1000), entries[0].Duration)
	assert.Equal(t, clickup.Millis(-500), entries[1].Duration)
	assert.Equal(t, clickup.Millis(2000), entries[2].Duration)
}

func TestTimeEntriesOmitsUserWhenEmpty(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["user_id"]
		assert.False(t, present)
		_, _ = io.WriteString(w, `{"data":[]}`)
	})
	_, err := client.TimeEntries(context.Background(), "tok", "team-1", 0, 1, "")
	require.NoError(t, err)
}

func TestCreateTimeEntryPostsIntervalWithoutDuration(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/task/t1/time", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"description": "Session of 00:00:03 from cutrack",
			"start":       float64(1000),
			"end":         float64(4500),
			"billable":    false,
		}, body)
		_, _ = io.WriteString(w, `{"data":{"id":"entry-9"}}`)
	})
	id, err := client.CreateTimeEntry(context.Background(), "tok", "t1", clickup.NewTimeEntry{
		Description: "Session of 00:00:03 from cutrack",
		Start:       1000,
		End:         4500,
	})
	require.NoError(t, err)
	assert.Equal(t, "entry-9", id)
}

func TestNon2xxBecomesRemoteErrorWithUpstreamMessage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"err":"Time entry start must be before end","ECODE":"TIMEENTRY_001"}`)
	})
	_, err := client.CreateTimeEntry(context.Background(), "tok", "t1", clickup.NewTimeEntry{})
	var remote *apperrors.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Equal(t, "Time entry start must be before end", remote.Message)
	assert.Contains(t, err.Error(), "400")
	assert.False(t, errors.Is(err, apperrors.ErrAuth))
}

func TestUnauthorizedMatchesErrAuth(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"err":"Token invalid","ECODE":"OAUTH_025"}`)
	})
	_, err := client.Teams(context.Background(), "tok")
	require.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestTeamTasksQuery(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/team/9/task", r.URL.Path)
		assert.Equal(t, []string{"77"}, r.URL.Query()["assignees[]"])
		assert.Equal(t, "false", r.URL.Query().Get("include_closed"))
		_, _ = io.WriteString(w, `{"tasks":[{"id":"abc","name":"Write docs","status":{"status":"open"},"list":{"id":1,"name":"Backlog"}}]}`)
	})
	tasks, err := client.TeamTasks(context.Background(), "tok", "9", "77")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Backlog", tasks[0].List.Name)
	assert.Equal(t, "open", tasks[0].Status.Status)
}
