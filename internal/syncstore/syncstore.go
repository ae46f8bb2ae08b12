// Package syncstore holds the in-process view of the signed-in user's goals and
// activities and mediates every change to them.
//
// Each store owns one list for one session. Mutations go to the remote document
// store first; the list is patched only after the remote call succeeded, and most
// mutations finish with a full refetch to pick up whatever the remote side holds.
// Remote calls are never made while the list lock is held.
package syncstore

import (
	"errors"
	"sync"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrUnauthenticated  = errors.New("user not authenticated")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvalidStatus    = errors.New("invalid activity status")
)

const (
	msgSignInRequired = "You need to sign in to continue."
	msgFillAllFields  = "Please fill in all fields before saving."
)

// OpenRequests lets a create/edit form subscribe to "open the form" requests raised
// elsewhere, e.g. by a list asking to edit one of its rows.
type OpenRequests struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// Subscribe registers fn and returns a function that removes it again.
func (o *OpenRequests) Subscribe(fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.subs == nil {
		o.subs = make(map[int]func())
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs, id)
	}
}

// Request calls every subscriber. It is a no-op when nobody subscribed.
func (o *OpenRequests) Request() {
	o.mu.Lock()
	subs := make([]func(), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// loading counts in-flight operations; the store is loading while any is running.
type loading struct {
	mu sync.Mutex
	n  int
}

func (l *loading) start() func() {
	l.mu.Lock()
	l.n++
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		l.n--
		l.mu.Unlock()
	}
}

func (l *loading) active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n > 0
}
