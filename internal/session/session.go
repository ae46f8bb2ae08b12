// Package session keeps one pair of synchronization stores per signed-in user.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/repository"
	"github.com/templui/studytrack/internal/syncstore"
)

var ErrNoUser = errors.New("session requires a user id")

// Session is the state one user works against. Its stores are built once and
// reused until the session expires.
type Session struct {
	UserID     string
	Goals      *syncstore.GoalStore
	Activities *syncstore.ActivityStore
	Queue      *notify.Queue

	auth     *auth.Session
	lastUsed time.Time

	// req is held for the whole of one request, so Queue only ever holds
	// that request's notifications.
	req sync.Mutex
}

type Manager struct {
	goals      repository.GoalRepository
	activities repository.ActivityRepository
	idle       time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns a manager whose sessions expire after idle without use.
// A zero idle duration keeps sessions until Close.
func NewManager(goals repository.GoalRepository, activities repository.ActivityRepository, idle time.Duration) *Manager {
	return &Manager{
		goals:      goals,
		activities: activities,
		idle:       idle,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// Session returns the session of userID, creating it on first use. Both lists are
// fetched the first time they are needed; a failed fetch is reported through the
// session queue and retried on the next call.
func (m *Manager) Session(ctx context.Context, userID string) (*Session, error) {
	s, release, err := m.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	release()
	return s, nil
}

// Acquire is Session for one request: the session stays exclusively held until
// release is called. Concurrent requests of the same user run one at a time.
func (m *Manager) Acquire(ctx context.Context, userID string) (s *Session, release func(), err error) {
	if userID == "" {
		return nil, nil, ErrNoUser
	}

	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		s = m.newSession(userID)
		m.sessions[userID] = s
		slog.Debug("session created", "user_id", userID)
	}
	s.lastUsed = m.now()
	m.mu.Unlock()

	s.req.Lock()

	if err := s.Goals.EnsureFetched(ctx); err != nil {
		slog.Warn("initial goal fetch failed", "error", err, "user_id", userID)
	}
	if err := s.Activities.EnsureFetched(ctx); err != nil {
		slog.Warn("initial activity fetch failed", "error", err, "user_id", userID)
	}

	return s, s.req.Unlock, nil
}

func (m *Manager) newSession(userID string) *Session {
	provider := auth.NewSession(userID)
	queue := &notify.Queue{}
	notifier := notify.Multi{queue, notify.Log{}}

	return &Session{
		UserID:     userID,
		Goals:      syncstore.NewGoalStore(m.goals, provider, notifier),
		Activities: syncstore.NewActivityStore(m.activities, provider, notifier),
		Queue:      queue,
		auth:       provider,
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// End signs the user out and drops their session.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.auth.SignOut()
	}
}

// Sweep ends every session unused for longer than the idle timeout and returns
// how many were ended.
func (m *Manager) Sweep() int {
	if m.idle <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.auth.SignOut()
		slog.Debug("session expired", "user_id", s.UserID)
	}

	return len(expired)
}

// Run sweeps idle sessions until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.idle <= 0 {
		return
	}

	ticker := time.NewTicker(m.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Info("expired idle sessions", "count", n)
			}
		}
	}
}

// Close ends all sessions.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.auth.SignOut()
	}
}
