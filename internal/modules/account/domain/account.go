package domain

import (
	"fmt"
	"strings"
)

// MinTokenLength is exclusive: a credential must be longer than this.
const MinTokenLength = 10

type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Initials       string `json:"initials"`
	ProfilePicture string `json:"profilePicture"`
}

type Team struct {
	ID   string
	Name string
}

// NormalizeToken trims the credential and checks its shape before any
// remote validation.
func NormalizeToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("token is required")
	}
	if len(token) <= MinTokenLength {
		return "", fmt.Errorf("token is too short")
	}
	return token, nil
}
