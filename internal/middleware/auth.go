package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/ctxkeys"
	"github.com/templui/studytrack/internal/notify"
)

// TokenVerifier turns a bearer token into a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

var _ TokenVerifier = (*auth.TokenIssuer)(nil)

// RequireBearer verifies the "Authorization: Bearer <jwt>" header and adds the user id
// to the request context. Requests without a valid token get 401.
func RequireBearer(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				unauthorized(w, "You need to sign in to continue.")
				return
			}

			userID, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				slog.Debug("rejected bearer token", "error", err, "path", r.URL.Path)
				unauthorized(w, "Your session has expired. Sign in again.")
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, notify.Warning(message))
}

func writeError(w http.ResponseWriter, status int, n notify.Notification) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"notifications": []notify.Notification{n},
	})
}
