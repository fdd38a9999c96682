package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"daily-diet/models"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "sessionId"

type contextKey string

const userIDKey contextKey = "user_id"

// SessionResolver looks up the user owning a session token.
type SessionResolver interface {
	GetBySession(ctx context.Context, sessionID string) (*models.User, error)
}

// SessionAuth rejects requests without a valid session cookie and stores the
// owning user id in the request context.
func SessionAuth(users SessionResolver, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			user, err := users.GetBySession(r.Context(), cookie.Value)
			if err != nil {
				logger.Error("failed to resolve session", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
				return
			}
			if user == nil {
				logger.Warn("unknown session")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the id stored by SessionAuth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized."})
}
