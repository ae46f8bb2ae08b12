// Package auth answers "who is the current user" for the synchronization stores
// and issues the bearer tokens that carry that answer across process boundaries.
package auth

import "sync"

// Provider reports the authenticated user id, or false when nobody is signed in.
type Provider interface {
	CurrentUserID() (string, bool)
}

// Session is a Provider whose user can sign in and out at runtime.
type Session struct {
	mu     sync.RWMutex
	userID string
}

// NewSession returns a session signed in as userID. An empty id means signed out.
func NewSession(userID string) *Session {
	return &Session{userID: userID}
}

func (s *Session) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userID != ""
}

func (s *Session) SignIn(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

func (s *Session) SignOut() {
	s.SignIn("")
}
