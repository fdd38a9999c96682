package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"daily-diet/metrics"
	"daily-diet/models"
	"daily-diet/repository"

	"github.com/google/uuid"
)

// UserHandler handles registration and the metrics of the current user
type UserHandler struct {
	users      repository.UserStore
	meals      repository.MealStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users repository.UserStore, meals repository.MealStore, sessionTTL time.Duration, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:      users,
		meals:      meals,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := models.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}

	sessionID := uuid.NewString()

	user, err := h.users.Create(r.Context(), *req.Name, *req.Email, sessionID)
	if errors.Is(err, repository.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		internalError(w, h.logger, "failed to create user", "error", err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)

	setSessionCookie(w, sessionID, h.sessionTTL)
	w.WriteHeader(http.StatusCreated)
}

// GetMetrics handles GET /users/metrics
func (h *UserHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	meals, err := h.meals.ListByOwner(r.Context(), owner)
	if err != nil {
		internalError(w, h.logger, "failed to get meals", "error", err, "user_id", owner)
		return
	}

	writeJSON(w, http.StatusOK, map[string]metrics.Summary{
		"metrics": metrics.Compute(meals),
	})
}
