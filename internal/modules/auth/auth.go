package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when the name/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the token a successful login yields. Every gated call
// re-presents it; nothing about the caller's role is cached in it.
type Identity struct {
	Name string `json:"name"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, name, password string) (Identity, error)
	// IssueToken signs an identity token for the HTTP boundary.
	IssueToken(id Identity) (string, error)
	ParseToken(token string) (Identity, error)
}
