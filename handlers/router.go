package handlers

import (
	"log/slog"
	"net/http"

	"daily-diet/config"
	"daily-diet/middleware"
	"daily-diet/repository"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the HTTP routes on top of an open store.
func NewRouter(store *repository.Store, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	userHandler := NewUserHandler(store.Users, store.Meals, cfg.SessionTTL, logger)
	sessionHandler := NewSessionHandler(store.Users, cfg.SessionTTL, logger)
	mealHandler := NewMealHandler(store.Meals, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(logger))

	// cookies need credentials, so origins are echoed back rather than "*"
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionAuth := middleware.SessionAuth(store.Users, logger)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.With(sessionAuth).Get("/metrics", userHandler.GetMetrics)
	})

	r.Post("/sessions", sessionHandler.CreateSession)

	r.Route("/meals", func(r chi.Router) {
		r.Use(sessionAuth)

		r.Get("/", mealHandler.ListMeals)
		r.Post("/", mealHandler.CreateMeal)
		r.Get("/{id}", mealHandler.GetMeal)
		r.Put("/{id}", mealHandler.UpdateMeal)
		r.Delete("/{id}", mealHandler.DeleteMeal)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
