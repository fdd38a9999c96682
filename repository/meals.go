package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"daily-diet/models"

	"github.com/google/uuid"
)

// MealRepository handles database operations for meals
type MealRepository struct {
	db *DB
}

// NewMealRepository creates a meal repository on an open database
func NewMealRepository(db *DB) *MealRepository {
	return &MealRepository{db: db}
}

const mealColumns = "id, user_id, name, description, date, hour, inside_diet, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner) (models.Meal, error) {
	var m models.Meal
	var createdAt string
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.Date, &m.Hour, &m.InsideDiet, &createdAt); err != nil {
		return m, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return m, fmt.Errorf("failed to parse created_at: %w", err)
	}
	m.CreatedAt = t
	return m, nil
}

// ListByOwner retrieves all meals of a user ordered by date
func (r *MealRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Meal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE user_id = ? ORDER BY date",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	var meals []models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}

	return meals, rows.Err()
}

// GetByID retrieves a single meal of a user
func (r *MealRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Meal, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE id = ? AND user_id = ?",
		id, ownerID,
	)

	m, err := scanMeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Create adds a new meal
func (r *MealRepository) Create(ctx context.Context, ownerID string, req models.CreateMealRequest) (*models.Meal, error) {
	m := models.Meal{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        *req.Name,
		Description: *req.Description,
		Date:        *req.Date,
		Hour:        *req.Hour,
		InsideDiet:  *req.InsideDiet,
		CreatedAt:   now(),
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO meals ("+mealColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.UserID, m.Name, m.Description, m.Date, m.Hour, m.InsideDiet, m.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal: %w", err)
	}

	return &m, nil
}

// Update writes the fields present in req and reports whether the meal exists
func (r *MealRepository) Update(ctx context.Context, id, ownerID string, req models.UpdateMealRequest) (bool, error) {
	if req.Empty() {
		m, err := r.GetByID(ctx, id, ownerID)
		return m != nil, err
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Date != nil {
		add("date", *req.Date)
	}
	if req.Hour != nil {
		add("hour", *req.Hour)
	}
	if req.InsideDiet != nil {
		add("inside_diet", *req.InsideDiet)
	}
	args = append(args, id, ownerID)

	result, err := r.db.ExecContext(ctx,
		"UPDATE meals SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update meal: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a meal and reports whether it existed
func (r *MealRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM meals WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete meal: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
