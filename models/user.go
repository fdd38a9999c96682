package models

import "time"

// User represents an account that owns meals
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	SessionID string    `json:"-"` // never sent to clients
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the registration payload
type CreateUserRequest struct {
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required,email"`
}

// Validate checks that both fields are present and the email is well formed
func (r CreateUserRequest) Validate() error {
	return validateStruct(r)
}

// CreateSessionRequest identifies the user a new session is opened for
type CreateSessionRequest struct {
	Email *string `json:"email" validate:"required,email"`
}

// Validate checks the email field
func (r CreateSessionRequest) Validate() error {
	return validateStruct(r)
}
