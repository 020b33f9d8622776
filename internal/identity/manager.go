// Package identity holds the ambient current-user session used by the
// repository adapters. Every user-scoped operation resolves the caller
// through Manager.Current at the point of delegation instead of
// threading the user ID through each call signature.
package identity

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrNoSession is returned when a user-scoped operation runs without an
// active sign-in.
var ErrNoSession = errors.New("no active session: sign in before using user-scoped operations")

// Session is the resolved caller identity.
type Session struct {
	UserID     string
	Token      *oauth2.Token
	SignedInAt time.Time
}

// Manager is the process-wide current-user accessor. Lifecycle is
// explicit: SignIn on sign-in, SignOut on sign-out. It deliberately
// holds at most one session; the scripts and the serve process are all
// single-operator tools.
type Manager struct {
	mu      sync.RWMutex
	current *Session
}

// NewManager creates an empty manager with no active session.
func NewManager() *Manager {
	return &Manager{}
}

// SignIn installs userID as the current identity. token carries the
// bearer credential the backend expects for this user; it may be nil
// when the client authenticates with a service key instead.
func (m *Manager) SignIn(userID string, token *oauth2.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &Session{
		UserID:     userID,
		Token:      token,
		SignedInAt: time.Now(),
	}
}

// SignOut clears the current identity.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Current returns the active session, or ErrNoSession when none is
// installed. Callers must treat the returned session as read-only.
func (m *Manager) Current() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, ErrNoSession
	}
	return m.current, nil
}

// TokenSource exposes the session token as an oauth2.TokenSource for
// HTTP clients that authenticate per-user rather than with the service
// key. Fails with ErrNoSession when no identity is active.
func (m *Manager) TokenSource() (oauth2.TokenSource, error) {
	sess, err := m.Current()
	if err != nil {
		return nil, err
	}
	if sess.Token == nil {
		return nil, errors.New("current session carries no token")
	}
	return oauth2.StaticTokenSource(sess.Token), nil
}
