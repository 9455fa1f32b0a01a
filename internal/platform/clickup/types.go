package clickup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID accepts identifiers sent either as JSON strings or numbers.
type ID string

func (i *ID) UnmarshalJSON(b []byte) error {
	s, err := stringOrNumber(b)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*i = ID(s)
	return nil
}

// Millis is a millisecond count sent either as a JSON string or number.
// Running timers report negative values.
type Millis int64

func (m *Millis) UnmarshalJSON(b []byte) error {
	s, err := stringOrNumber(b)
	if err != nil {
		return fmt.Errorf("decode millis: %w", err)
	}
	if s == "" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("decode millis %q: %w", s, err)
		}
		v = int64(f)
	}
	*m = Millis(v)
	return nil
}

func stringOrNumber(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

type User struct {
	ID             ID     `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Initials       string `json:"initials"`
	ProfilePicture string `json:"profilePicture"`
}

type Team struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type TimeEntry struct {
	ID          ID     `json:"id"`
	Description string `json:"description"`
	Start       Millis `json:"start"`
	End         Millis `json:"end"`
	Duration    Millis `json:"duration"`
	Billable    bool   `json:"billable"`
	Task        *struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
	} `json:"task,omitempty"`
}

// NewTimeEntry is the POST /task/{id}/time body.
type NewTimeEntry struct {
	Description string `json:"description"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Billable    bool   `json:"billable"`
}

type Task struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Status      struct {
		Status string `json:"status"`
	} `json:"status"`
	List struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
	} `json:"list"`
	Project struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
	Team ID `json:"team_id"`
}
