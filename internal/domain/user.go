// Package domain holds the plain entities shared by every layer.
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxUserIDLen   = 36
	MaxUsernameLen = 36
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameInvalid = errors.New("username is not valid utf-8")
)

type UserID string

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// NewUser assigns a fresh id; ids are never reused across connections.
// The username is fixed for the lifetime of the user.
func NewUser(username string) (*User, error) {
	switch {
	case username == "":
		return nil, ErrUsernameEmpty
	case !utf8.ValidString(username):
		return nil, ErrUsernameInvalid
	case len(username) > MaxUsernameLen:
		return nil, ErrUsernameTooLong
	}
	return &User{ID: UserID(uuid.NewString()), Username: username}, nil
}

// NormalizeUsername turns untrusted input into something NewUser accepts
// when possible: surrounding blanks and quotes are stripped, invalid bytes
// dropped and the result cut to MaxUsernameLen bytes on a rune boundary.
func NormalizeUsername(raw string) string {
	name := strings.ToValidUTF8(raw, "")
	name = strings.Trim(strings.TrimSpace(name), `"`)
	if len(name) <= MaxUsernameLen {
		return name
	}
	cut := MaxUsernameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return strings.TrimSpace(name[:cut])
}
