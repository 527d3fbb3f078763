package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialProvider decides whether a username/password pair is acceptable.
type CredentialProvider interface {
	Check(username, password string) bool
}

// StaticCredentials accepts exactly one configured username/password pair.
// Only a bcrypt hash of the password is kept in memory.
type StaticCredentials struct {
	username     string
	passwordHash []byte
}

// NewStaticCredentials creates a provider for a single reference credential.
// A password bcrypt cannot hash (empty, or longer than 72 bytes) leaves the
// provider unconfigured.
func NewStaticCredentials(username, password string) StaticCredentials {
	if password == "" {
		return StaticCredentials{username: username}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return StaticCredentials{username: username}
	}
	return StaticCredentials{username: username, passwordHash: hash}
}

// NewHashedCredentials creates a provider from a precomputed bcrypt hash.
func NewHashedCredentials(username, passwordHash string) StaticCredentials {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return StaticCredentials{username: username}
	}
	return StaticCredentials{username: username, passwordHash: []byte(passwordHash)}
}

// Configured reports whether the provider can accept anything at all.
func (c StaticCredentials) Configured() bool {
	return c.username != "" && len(c.passwordHash) > 0
}

// Check compares the username in constant time and the password against the
// stored hash. An unconfigured provider rejects everything.
func (c StaticCredentials) Check(username, password string) bool {
	if !c.Configured() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
