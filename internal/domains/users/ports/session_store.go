package ports

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionStore abstracts session/token persistence. Username resolves a
// live token back to its account for request authentication.
type SessionStore interface {
	Save(ctx context.Context, username, token string) error
	Username(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, username string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, string, string) error { return nil }
func (noopSessionStore) Username(context.Context, string) (string, error) {
	return "", ErrSessionNotFound
}
func (noopSessionStore) Delete(context.Context, string) error { return nil }
