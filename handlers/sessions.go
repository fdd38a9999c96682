package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"daily-diet/models"
	"daily-diet/repository"

	"github.com/google/uuid"
)

// SessionHandler opens new sessions for existing users
type SessionHandler struct {
	users      repository.UserStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(users repository.UserStore, sessionTTL time.Duration, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		users:      users,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// CreateSession handles POST /sessions. The previous session of the user stops
// resolving as soon as the new one is stored.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := models.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}

	sessionID := uuid.NewString()

	found, err := h.users.StartSession(r.Context(), *req.Email, sessionID)
	if err != nil {
		internalError(w, h.logger, "failed to start session", "error", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	h.logger.Info("session started")

	setSessionCookie(w, sessionID, h.sessionTTL)
	w.WriteHeader(http.StatusCreated)
}
