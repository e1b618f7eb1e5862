// Package session holds the authenticated identity for one login. A Session
// is created on login, passed by reference to whatever needs it, and
// invalidated on logout; consumers only ever read it.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("session: token is not a parseable JWT")

type Session struct {
	mu        sync.RWMutex
	token     string
	email     string
	name      string
	expiresAt time.Time
	createdAt time.Time
}

// New builds a session from a bearer token issued by the backend. The
// claims are read without signature verification: the client has no signing
// key and only needs the subject email and expiry for display and teardown.
// The backend re-validates the token on every call.
func New(token string) (*Session, error) {
	s := &Session{createdAt: time.Now()}
	if err := s.Authenticate(token); err != nil {
		return nil, err
	}
	return s, nil
}

// Authenticate replaces the session's credentials in place, so consumers
// holding the pointer see the new identity immediately.
func (s *Session) Authenticate(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ErrBadToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.email = ""
	s.name = ""
	s.expiresAt = time.Time{}
	if sub, err := claims.GetSubject(); err == nil {
		s.email = sub
		if at := strings.IndexByte(sub, '@'); at > 0 {
			s.name = sub[:at]
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiresAt = exp.Time
	}
	return nil
}

// Anonymous returns a session with no credentials. API reads that allow
// unauthenticated browsing still work; everything else degrades.
func Anonymous() *Session {
	return &Session{createdAt: time.Now()}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// SetIdentity records the profile name and canonical email once a
// /users/me or profile fetch has confirmed them.
func (s *Session) SetIdentity(email, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if email != "" {
		s.email = email
	}
	if name != "" {
		s.name = name
	}
}

// Valid reports whether the session carries a usable, unexpired token.
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return false
	}
	return true
}

// Invalidate drops the credentials. The session object stays referenced by
// consumers but behaves as anonymous from here on.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.email = ""
	s.name = ""
	s.expiresAt = time.Time{}
}
