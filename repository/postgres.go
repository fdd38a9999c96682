package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-diet/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mealRecord struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	UserID      string    `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Date        string    `gorm:"type:text;not null"`
	Hour        string    `gorm:"type:text;not null"`
	InsideDiet  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (mealRecord) TableName() string { return "meals" }

func (m mealRecord) toModel() models.Meal {
	return models.Meal{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Date:        m.Date,
		Hour:        m.Hour,
		InsideDiet:  m.InsideDiet,
		CreatedAt:   m.CreatedAt,
	}
}

type userRecord struct {
	ID        string  `gorm:"primaryKey;type:uuid"`
	Name      string  `gorm:"not null"`
	Email     string  `gorm:"uniqueIndex;not null"`
	SessionID *string `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

// OpenPostgres connects to PostgreSQL and migrates the meals and users tables.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}, &mealRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// NewPostgresStore opens the PostgreSQL database described by dsn.
func NewPostgresStore(dsn string) (*Store, error) {
	db, err := OpenPostgres(dsn)
	if err != nil {
		return nil, err
	}
	return &Store{
		Meals: NewPostgresMealRepository(db),
		Users: NewPostgresUserRepository(db),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

var (
	_ MealStore = (*PostgresMealRepository)(nil)
	_ UserStore = (*PostgresUserRepository)(nil)
)

// PostgresMealRepository implements MealStore with gorm.
type PostgresMealRepository struct {
	db *gorm.DB
}

// NewPostgresMealRepository creates a meal repository on an open gorm handle
func NewPostgresMealRepository(db *gorm.DB) *PostgresMealRepository {
	return &PostgresMealRepository{db: db}
}

// ListByOwner retrieves all meals of a user ordered by date
func (r *PostgresMealRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Meal, error) {
	var records []mealRecord
	// "C" keeps the ordering byte-wise regardless of the database locale
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(`date COLLATE "C"`).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}

	meals := make([]models.Meal, 0, len(records))
	for _, rec := range records {
		meals = append(meals, rec.toModel())
	}
	return meals, nil
}

// GetByID retrieves a single meal owned by the user, or nil if none matches
func (r *PostgresMealRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Meal, error) {
	var rec mealRecord
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := rec.toModel()
	return &m, nil
}

// Create inserts a new meal for the user
func (r *PostgresMealRepository) Create(ctx context.Context, ownerID string, req models.CreateMealRequest) (*models.Meal, error) {
	rec := mealRecord{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        *req.Name,
		Description: *req.Description,
		Date:        *req.Date,
		Hour:        *req.Hour,
		InsideDiet:  *req.InsideDiet,
		CreatedAt:   now(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to insert meal: %w", err)
	}
	m := rec.toModel()
	return &m, nil
}

// Update writes the fields present in req.
// It reports false when the meal does not exist for the user.
func (r *PostgresMealRepository) Update(ctx context.Context, id, ownerID string, req models.UpdateMealRequest) (bool, error) {
	if req.Empty() {
		m, err := r.GetByID(ctx, id, ownerID)
		return m != nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Hour != nil {
		updates["hour"] = *req.Hour
	}
	if req.InsideDiet != nil {
		updates["inside_diet"] = *req.InsideDiet
	}

	result := r.db.WithContext(ctx).Model(&mealRecord{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update meal: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a meal and reports whether it existed
func (r *PostgresMealRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&mealRecord{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete meal: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// PostgresUserRepository implements UserStore with gorm.
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a user repository on an open gorm handle
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a user holding a fresh session
func (r *PostgresUserRepository) Create(ctx context.Context, name, email, sessionID string) (*models.User, error) {
	rec := userRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		SessionID: &sessionID,
		CreatedAt: now(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &models.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		SessionID: sessionID,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// StartSession replaces the session of the user with the given email.
// It reports false when no such user exists.
func (r *PostgresUserRepository) StartSession(ctx context.Context, email, sessionID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("email = ?", email).
		Update("session_id", sessionID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetBySession finds the user owning a session, or nil if none does
func (r *PostgresUserRepository) GetBySession(ctx context.Context, sessionID string) (*models.User, error) {
	// session ids are UUID columns; anything else cannot match
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, nil
	}

	var rec userRecord
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		SessionID: sessionID,
		CreatedAt: rec.CreatedAt,
	}, nil
}
