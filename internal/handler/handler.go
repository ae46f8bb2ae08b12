package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/templui/studytrack/internal/ctxkeys"
	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/repository"
	"github.com/templui/studytrack/internal/session"
	"github.com/templui/studytrack/internal/syncstore"
)

// Sessions hands out the per-user session a request works against, held
// until release is called.
type Sessions interface {
	Acquire(ctx context.Context, userID string) (s *session.Session, release func(), err error)
}

const maxBodyBytes = 64 << 10

// currentSession resolves and holds the session of the authenticated user. It
// writes a 401 response and returns nil when there is none.
func currentSession(w http.ResponseWriter, r *http.Request, sessions Sessions) (*session.Session, func()) {
	userID := ctxkeys.UserID(r.Context())
	s, release, err := sessions.Acquire(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"notifications": []notify.Notification{notify.Warning("You need to sign in to continue.")},
		})
		return nil, nil
	}
	return s, release
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, syncstore.ErrValidation), errors.Is(err, syncstore.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, syncstore.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, syncstore.ErrGoalNotFound), errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, syncstore.ErrActivityNotFound), errors.Is(err, repository.ErrActivityNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst. On failure it queues a warning on s and
// reports false.
func decode(r *http.Request, s *session.Session, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		slog.Debug("invalid request body", "error", err, "path", r.URL.Path)
		s.Queue.Notify(notify.Warning("The request could not be read."))
		return false
	}
	return true
}

// parseDate accepts the same date forms the store reads. An empty string is the
// zero time so that required-field validation reports it.
func parseDate(s *session.Session, value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}

	t, err := dates.Parse(value)
	if err != nil {
		s.Queue.Notify(notify.Warning("Target date must look like 2024-12-01."))
		return time.Time{}, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
