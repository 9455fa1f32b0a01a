// Package clickup is the HTTP transport for the ClickUp v2 API. Module
// adapters build on Client and translate the wire types into their domains.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	apperrors "cutrack/internal/platform/errors"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New returns a client for baseURL. A nil httpClient uses a client without
// timeout; callers bound requests through their context.
func New(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger,
	}
}

type errorBody struct {
	Err   string `json:"err"`
	Code  string `json:"ECODE"`
	Error string `json:"error"`
}

// Do sends one request carrying the raw token in Authorization and decodes
// a 2xx JSON answer into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrAuth
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("method", method).Str("path", path).Msg("clickup request")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := &apperrors.RemoteError{Status: resp.StatusCode, Message: errorMessage(raw)}
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("message", remote.Message).Msg("clickup error response")
		return remote
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Err != "":
			return body.Err
		case body.Error != "":
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.Do(ctx, http.MethodGet, "/user", nil, token, nil, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

func (c *Client) Teams(ctx context.Context, token string) ([]Team, error) {
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.Do(ctx, http.MethodGet, "/team", nil, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

func (c *Client) TimeEntries(ctx context.Context, token, teamID string, startMS, endMS int64, userID string) ([]TimeEntry, error) {
	query := url.Values{}
	query.Set("start_date", fmt.Sprintf("%d", startMS))
	query.Set("end_date", fmt.Sprintf("%d", endMS))
	if userID != "" {
		query.Set("user_id", userID)
	}
	var resp struct {
		Data []TimeEntry `json:"data"`
	}
	path := "/team/" + url.PathEscape(teamID) + "/time_entries"
	if err := c.Do(ctx, http.MethodGet, path, query, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateTimeEntry posts start/end only; ClickUp derives the duration.
func (c *Client) CreateTimeEntry(ctx context.Context, token, taskID string, entry NewTimeEntry) (string, error) {
	var resp struct {
		Data struct {
			ID ID `json:"id"`
		} `json:"data"`
		ID ID `json:"id"`
	}
	path := "/task/" + url.PathEscape(taskID) + "/time"
	if err := c.Do(ctx, http.MethodPost, path, nil, token, entry, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID != "" {
		return string(resp.Data.ID), nil
	}
	return string(resp.ID), nil
}

func (c *Client) TeamTasks(ctx context.Context, token, teamID, assigneeID string) ([]Task, error) {
	query := url.Values{}
	if assigneeID != "" {
		query.Add("assignees[]", assigneeID)
	}
	query.Set("include_closed", "false")
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	path := "/team/" + url.PathEscape(teamID) + "/task"
	if err := c.Do(ctx, http.MethodGet, path, query, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) Task(ctx context.Context, token, taskID string) (Task, error) {
	var task Task
	if err := c.Do(ctx, http.MethodGet, "/task/"+url.PathEscape(taskID), nil, token, nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}
