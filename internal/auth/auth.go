// Package auth handles operator login, session tokens and role-based
// access checks.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/acsops/acs-console/internal/store"
)

// ErrInvalidCredentials is returned for any login failure, whether the
// account is missing or the password doesn't match, so responses can't
// be used for username enumeration.
var ErrInvalidCredentials = errors.New("auth: invalid username or password")

// UserStore is the subset of the store the authenticator needs.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*store.User, error)
}

// Authenticator verifies credentials and issues session tokens.
type Authenticator struct {
	users  UserStore
	tokens *TokenIssuer
}

// New creates an Authenticator backed by the given user store and
// token signing secret.
func New(users UserStore, secret []byte) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: NewTokenIssuer(secret),
	}
}

// Login verifies the username/password pair and returns a signed session
// token. Returns ErrInvalidCredentials on either a missing account or a
// hash mismatch; store failures are passed through wrapped so the
// boundary can report the store as unavailable.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login lookup failed: %w", err)
	}

	if !VerifyPassword(password, u.Salt, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(u.Username, u.Username, u.Role)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Verify parses and validates a session token.
func (a *Authenticator) Verify(tokenString string) (*Claims, error) {
	return a.tokens.Verify(tokenString)
}
