package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/transfa/payment-service/internal/domain"
)

// DefaultSessionTTL is how long a dashboard session stays live.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore holds active dashboard sessions in memory. Expired sessions
// are evicted lazily by Verify; there is no background sweeper.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
	log      zerolog.Logger
}

// SessionStoreOption customizes a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTokenGenerator overrides how tokens are generated.
func WithTokenGenerator(gen func() string) SessionStoreOption {
	return func(s *SessionStore) {
		if gen != nil {
			s.newToken = gen
		}
	}
}

// NewSessionStore creates an empty store. A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionStore(ttl time.Duration, log zerolog.Logger, opts ...SessionStoreOption) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue records a new session for owner and returns its token. Existing
// sessions of the same owner stay valid.
func (s *SessionStore) Issue(owner string) string {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.newToken()
	for {
		if _, taken := s.sessions[token]; !taken {
			break
		}
		token = s.newToken()
	}

	s.sessions[token] = domain.Session{
		Token:     token,
		Owner:     owner,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	return token
}

// Verify returns the owner of a live session. Unknown and expired tokens
// yield ok=false; an expired session is removed as a side effect.
func (s *SessionStore) Verify(token string) (owner string, ok bool) {
	if token == "" {
		return "", false
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[token]
	if !found {
		s.log.Debug().Msg("session token not found")
		return "", false
	}
	if session.Expired(now) {
		delete(s.sessions, token)
		s.log.Info().Str("owner", session.Owner).Time("expired_at", session.ExpiresAt).Msg("session expired; evicted")
		return "", false
	}
	return session.Owner, true
}

// Revoke removes the session for token. Unknown or empty tokens are a no-op.
func (s *SessionStore) Revoke(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len reports how many sessions are held, including expired ones not yet evicted.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close drops every session. The store remains usable afterwards.
func (s *SessionStore) Close() {
	s.mu.Lock()
	s.sessions = make(map[string]domain.Session)
	s.mu.Unlock()
}
