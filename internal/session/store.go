// Package session holds the bearer token obtained from the authentication flow.
//
// The token is the client's only credential. The authentication handlers write
// it; the click submitter only ever reads it, through the TokenSource interface.
// Two stores are provided: an embedded SQLite store that survives restarts
// (the equivalent of the Mini App's local storage) and an in-memory store.
package session

import (
	"context"
	"errors"
)

// TokenKey is the well-known key the session token is stored under.
const TokenKey = "jwt_token"

// ErrNoToken is returned when no session token has been stored.
var ErrNoToken = errors.New("no session token stored")

// TokenSource is the read side of a token store.
type TokenSource interface {
	// Token returns the current session token or ErrNoToken.
	Token(ctx context.Context) (string, error)
}

// TokenStore is a TokenSource that can also be written by the authentication flow.
type TokenStore interface {
	TokenSource
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	Close() error
}
