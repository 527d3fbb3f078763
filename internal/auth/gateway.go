/**
 * @description
 * Authentication for the payments dashboard. The Gateway checks credentials
 * against an injected CredentialProvider and drives the SessionStore.
 */
package auth

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrInvalidCredentials is returned for empty or mismatching credentials.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Gateway authenticates dashboard users and manages their sessions.
type Gateway struct {
	credentials CredentialProvider
	sessions    *SessionStore
	log         zerolog.Logger
}

// NewGateway wires a credential provider to a session store.
func NewGateway(credentials CredentialProvider, sessions *SessionStore, log zerolog.Logger) *Gateway {
	return &Gateway{credentials: credentials, sessions: sessions, log: log}
}

// Authenticate issues a session token for a valid username/password pair.
// There is no lockout after repeated failures.
func (g *Gateway) Authenticate(username, password string) (string, error) {
	g.log.Info().Str("username", username).Msg("authentication attempt")

	if username == "" || password == "" {
		g.log.Warn().Str("username", username).Msg("authentication rejected: missing credentials")
		return "", ErrInvalidCredentials
	}
	if !g.credentials.Check(username, password) {
		g.log.Warn().Str("username", username).Msg("authentication failed")
		return "", ErrInvalidCredentials
	}

	token := g.sessions.Issue(username)
	g.log.Info().Str("username", username).Msg("authentication successful")
	return token, nil
}

// CurrentUser returns the owner of token while its session is live.
func (g *Gateway) CurrentUser(token string) (string, bool) {
	return g.sessions.Verify(token)
}

// Logout invalidates token. It never fails.
func (g *Gateway) Logout(token string) {
	g.sessions.Revoke(token)
	if token != "" {
		g.log.Info().Msg("session invalidated")
	}
}
