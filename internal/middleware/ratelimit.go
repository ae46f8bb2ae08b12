package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/templui/studytrack/internal/ctxkeys"
	"github.com/templui/studytrack/internal/notify"
)

// RateLimiter counts requests per caller in fixed windows. Callers are
// keyed by signed-in user, or by client IP when no user is known.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	callers map[string]*quota
}

type quota struct {
	used    int
	resetAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		callers: make(map[string]*quota),
	}
}

// Allow records one request for key and reports whether it fits the quota.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	q, ok := rl.callers[key]
	if !ok || !now.Before(q.resetAt) {
		q = &quota{resetAt: now.Add(rl.window)}
		rl.callers[key] = q
	}
	if q.used >= rl.limit {
		return false
	}
	q.used++
	return true
}

// Len returns the number of callers currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.callers)
}

// Sweep forgets callers whose window has ended and returns how many it dropped.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	dropped := 0
	for key, q := range rl.callers {
		if !now.Before(q.resetAt) {
			delete(rl.callers, key)
			dropped++
		}
	}
	return dropped
}

// Run sweeps once per window until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	if rl.window <= 0 {
		return
	}
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Sweep(); n > 0 {
				slog.Debug("rate limiter swept callers", "dropped", n)
			}
		}
	}
}

// Limit wraps a mutating handler. Over-quota callers get a 429 with an error notification.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if !rl.Allow(key) {
			slog.Warn("rate limit exceeded", "caller", key, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, notify.Error("Too many requests. Please try again later."))
			return
		}
		next(w, r)
	}
}

func callerKey(r *http.Request) string {
	if userID := ctxkeys.UserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	return "ip:" + clientIP(r)
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
