// Package notify carries user-facing messages (the success and failure alerts
// shown after an action) from the stores to whatever presents them.
package notify

import (
	"log/slog"
	"sync"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

type Notification struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

func Success(message string) Notification {
	return Notification{Kind: KindSuccess, Title: "Success", Message: message}
}

func Error(message string) Notification {
	return Notification{Kind: KindError, Title: "Error", Message: message}
}

func Warning(message string) Notification {
	return Notification{Kind: KindWarning, Title: "Warning", Message: message}
}

// Log writes notifications to slog.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification", "kind", n.Kind, "title", n.Title, "message", n.Message)
}

// Queue buffers notifications until a presenter drains them.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Drain returns buffered notifications in arrival order and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// Discard drops everything.
var Discard Notifier = Func(func(Notification) {})
