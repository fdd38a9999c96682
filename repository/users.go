package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"daily-diet/models"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UserRepository handles user and session database operations
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user holding a fresh session
func (r *UserRepository) Create(ctx context.Context, name, email, sessionID string) (*models.User, error) {
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		SessionID: sessionID,
		CreatedAt: now(),
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, session_id, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.SessionID, user.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		if isEmailConflict(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// isEmailConflict reports whether err is the UNIQUE violation on users.email
func isEmailConflict(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return false
	}
	return strings.Contains(se.Error(), "users.email")
}

// StartSession replaces the session of the user with the given email.
// It reports false when no such user exists.
func (r *UserRepository) StartSession(ctx context.Context, email, sessionID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE users SET session_id = ? WHERE email = ?", sessionID, email)
	if err != nil {
		return false, fmt.Errorf("failed to update session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetBySession resolves a session token to its user
func (r *UserRepository) GetBySession(ctx context.Context, sessionID string) (*models.User, error) {
	var user models.User
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, session_id, created_at FROM users WHERE session_id = ?",
		sessionID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.SessionID, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &user, nil
}
