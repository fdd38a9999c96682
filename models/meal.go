package models

import "time"

// Meal represents a meal logged by a user.
// Date and Hour are kept as the text the client sent; they are never parsed.
type Meal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Hour        string    `json:"hour"`
	InsideDiet  bool      `json:"inside_diet"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMealRequest is the payload for creating a new meal.
// Pointer fields let validation tell a missing field from a zero value.
type CreateMealRequest struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Date        *string `json:"date" validate:"required"`
	Hour        *string `json:"hour" validate:"required"`
	InsideDiet  *bool   `json:"inside_diet" validate:"required"`
}

// Validate reports every missing field.
func (r CreateMealRequest) Validate() error {
	return validateStruct(r)
}

// UpdateMealRequest is the payload for updating a meal. Every field is optional
// and only the ones present are written.
type UpdateMealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Hour        *string `json:"hour"`
	InsideDiet  *bool   `json:"inside_diet"`
}

// Empty reports whether the update carries no field at all.
func (r UpdateMealRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Date == nil &&
		r.Hour == nil && r.InsideDiet == nil
}

// CreatedMeal is the body returned after a meal is inserted.
type CreatedMeal struct {
	ID string `json:"id"`
}
