package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"daily-diet/middleware"
	"daily-diet/models"
)

type errorResponse struct {
	Error  string              `json:"error"`
	Issues []models.FieldIssue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeBadRequest answers 400 with the field issues when err is a validation
// error and a generic message otherwise.
func writeBadRequest(w http.ResponseWriter, logger *slog.Logger, err error) {
	var v *models.ValidationError
	if errors.As(err, &v) {
		logger.Warn("invalid request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Issues: v.Issues})
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request")
}

func internalError(w http.ResponseWriter, logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// ownerID reads the session owner; the route is only reachable behind SessionAuth.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
	}
	return id, ok
}

func setSessionCookie(w http.ResponseWriter, sessionID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
	})
}
