package domain

import "time"

// Session is an authenticated dashboard session. It is never updated in
// place; it only disappears through logout or lazy eviction.
type Session struct {
	Token     string
	Owner     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer live at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
