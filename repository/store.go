package repository

import (
	"context"
	"errors"
	"time"

	"daily-diet/models"
)

// ErrEmailTaken is returned when a user is created with an email already in use.
var ErrEmailTaken = errors.New("email already registered")

// MealStore is the meal persistence contract. Every call is scoped to one owner:
// a meal that belongs to someone else is reported exactly like a missing one.
type MealStore interface {
	// ListByOwner returns the owner's meals ordered by the byte-wise text
	// order of their date.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Meal, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Meal, error)
	Create(ctx context.Context, ownerID string, req models.CreateMealRequest) (*models.Meal, error)
	Update(ctx context.Context, id, ownerID string, req models.UpdateMealRequest) (bool, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

// UserStore persists users and their current session token.
type UserStore interface {
	Create(ctx context.Context, name, email, sessionID string) (*models.User, error)
	StartSession(ctx context.Context, email, sessionID string) (bool, error)
	GetBySession(ctx context.Context, sessionID string) (*models.User, error)
}

// Store bundles the repositories backed by one database handle.
type Store struct {
	Meals MealStore
	Users UserStore
	close func() error
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewSQLiteStore opens the SQLite database at path.
func NewSQLiteStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		Meals: NewMealRepository(db),
		Users: NewUserRepository(db),
		close: db.Close,
	}, nil
}

const timeLayout = time.RFC3339Nano

func now() time.Time {
	return time.Now().UTC()
}
