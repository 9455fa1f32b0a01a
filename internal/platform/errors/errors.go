package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrAuth         = errors.New("missing or invalid credential")
	ErrNoTeam       = errors.New("no accessible team")
	ErrUndecodable  = errors.New("stored value cannot be decoded")

	ErrInvalidState    = errors.New("invalid tracker state")
	ErrNoActiveSession = fmt.Errorf("%w: no active session", ErrInvalidState)
	ErrSessionMismatch = fmt.Errorf("%w: no active session for this task", ErrInvalidState)
)

// RemoteError is a non-2xx answer from the remote API.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote api: %d - %s", e.Status, e.Message)
}

// Is makes a 401 answer match ErrAuth.
func (e *RemoteError) Is(target error) bool {
	return target == ErrAuth && e.Status == http.StatusUnauthorized
}

// PersistenceError wraps a key-value store failure.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is makes a decode failure match ErrUndecodable.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrUndecodable && e.Op == "decode"
}
