package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/studytrack/internal/app"
	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/config"
	"github.com/templui/studytrack/internal/docstore"
	"github.com/templui/studytrack/internal/middleware"
	"github.com/templui/studytrack/internal/repository"
	"github.com/templui/studytrack/internal/session"
)

func newTestApp(t *testing.T, rateLimit int) *app.App {
	t.Helper()

	store := docstore.NewMemoryStore()
	goals := repository.NewGoalRepository(store)
	activities := repository.NewActivityRepository(store)

	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	sessions := session.NewManager(goals, activities, time.Hour)
	t.Cleanup(sessions.Close)

	return &app.App{
		Cfg: &config.Config{
			RateLimitRequests: rateLimit,
			RateLimitWindow:   time.Minute,
		},
		Store:              store,
		GoalRepository:     goals,
		ActivityRepository: activities,
		Sessions:           sessions,
		Tokens:             tokens,
		Limiter:            middleware.NewRateLimiter(rateLimit, time.Minute),
	}
}

func bearer(t *testing.T, a *app.App, userID string) string {
	t.Helper()
	token, err := a.Tokens.Generate(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRoutes_Health(t *testing.T) {
	h := SetupRoutes(newTestApp(t, 10))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRoutes_RequireBearer(t *testing.T) {
	a := newTestApp(t, 10)
	h := SetupRoutes(a)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic dTE6cHc=", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", bearer(t, a, "u1"), http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "notifications")
		})
	}
}

func TestRoutes_UsersAreIsolated(t *testing.T) {
	a := newTestApp(t, 10)
	h := SetupRoutes(a)

	req := httptest.NewRequest(http.MethodPost, "/api/goals",
		strings.NewReader(`{"title":"t","description":"d","target_date":"2024-12-01"}`))
	req.Header.Set("Authorization", bearer(t, a, "alice"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/goals?refresh=1", nil)
	req.Header.Set("Authorization", bearer(t, a, "bob"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"goals":[]`)
}

func TestRoutes_RateLimitsMutations(t *testing.T) {
	a := newTestApp(t, 1)
	h := SetupRoutes(a)
	token := bearer(t, a, "u1")

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/goals",
			strings.NewReader(`{"title":"t","description":"d","target_date":"2024-12-01"}`))
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "reads are not limited")

	req = httptest.NewRequest(http.MethodPost, "/api/goals",
		strings.NewReader(`{"title":"t","description":"d","target_date":"2024-12-01"}`))
	req.Header.Set("Authorization", bearer(t, a, "u2"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, "each user has its own quota")
}
