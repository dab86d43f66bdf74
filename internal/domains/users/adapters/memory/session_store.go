package memory

import (
	"context"
	"sync"
	"time"

	"github.com/florenda/florenda-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore is an in-memory SessionStore implementation with expiry.
type SessionStore struct {
	mu       sync.Mutex
	byToken  map[string]sessionEntry
	byUser   map[string]string
	sessionT time.Duration
}

type sessionEntry struct {
	username  string
	expiresAt time.Time
}

func NewSessionStore(sessionTTL time.Duration) *SessionStore {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &SessionStore{
		byToken:  map[string]sessionEntry{},
		byUser:   map[string]string{},
		sessionT: sessionTTL,
	}
}

func (s *SessionStore) Save(_ context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[username]; ok {
		delete(s.byToken, old)
	}
	s.byToken[token] = sessionEntry{username: username, expiresAt: time.Now().Add(s.sessionT)}
	s.byUser[username] = token
	return nil
}

func (s *SessionStore) Username(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byToken[token]
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.byToken, token)
		delete(s.byUser, entry.username)
		return "", ports.ErrSessionNotFound
	}
	return entry.username, nil
}

func (s *SessionStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byUser[username]; ok {
		delete(s.byToken, token)
		delete(s.byUser, username)
	}
	return nil
}
