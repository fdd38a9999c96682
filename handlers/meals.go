package handlers

import (
	"log/slog"
	"net/http"

	"daily-diet/models"
	"daily-diet/repository"

	"github.com/go-chi/chi/v5"
)

// MealHandler handles all meal-related HTTP requests
type MealHandler struct {
	meals  repository.MealStore
	logger *slog.Logger
}

// NewMealHandler creates a new handler
func NewMealHandler(meals repository.MealStore, logger *slog.Logger) *MealHandler {
	return &MealHandler{
		meals:  meals,
		logger: logger,
	}
}

// mealID validates the {id} URL parameter
func (h *MealHandler) mealID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := models.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, h.logger, err)
		return "", false
	}
	return id, true
}

// ListMeals handles GET /meals
func (h *MealHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	meals, err := h.meals.ListByOwner(r.Context(), owner)
	if err != nil {
		internalError(w, h.logger, "failed to get meals", "error", err, "user_id", owner)
		return
	}

	// Return empty array instead of null if no meals
	if meals == nil {
		meals = []models.Meal{}
	}

	writeJSON(w, http.StatusOK, map[string][]models.Meal{"meals": meals})
}

// GetMeal handles GET /meals/{id}
func (h *MealHandler) GetMeal(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := h.mealID(w, r)
	if !ok {
		return
	}

	meal, err := h.meals.GetByID(r.Context(), id, owner)
	if err != nil {
		internalError(w, h.logger, "failed to get meal", "error", err, "id", id)
		return
	}
	if meal == nil {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.Meal{"meals": meal})
}

// CreateMeal handles POST /meals
func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req models.CreateMealRequest
	if err := models.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}

	meal, err := h.meals.Create(r.Context(), owner, req)
	if err != nil {
		internalError(w, h.logger, "failed to create meal", "error", err)
		return
	}

	h.logger.Info("meal created", "id", meal.ID, "user_id", owner)

	writeJSON(w, http.StatusCreated, []models.CreatedMeal{{ID: meal.ID}})
}

// UpdateMeal handles PUT /meals/{id}
func (h *MealHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := h.mealID(w, r)
	if !ok {
		return
	}

	var req models.UpdateMealRequest
	if err := models.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, h.logger, err)
		return
	}

	found, err := h.meals.Update(r.Context(), id, owner, req)
	if err != nil {
		internalError(w, h.logger, "failed to update meal", "error", err, "id", id)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}

	h.logger.Info("meal updated", "id", id)
	w.WriteHeader(http.StatusOK)
}

// DeleteMeal handles DELETE /meals/{id}
func (h *MealHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := h.mealID(w, r)
	if !ok {
		return
	}

	found, err := h.meals.Delete(r.Context(), id, owner)
	if err != nil {
		internalError(w, h.logger, "failed to delete meal", "error", err, "id", id)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}

	h.logger.Info("meal deleted", "id", id)
	w.WriteHeader(http.StatusOK)
}
