package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smart-pantry-chef/internal/core/auth"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLStore gorm user store for postgres and sqlite
type SQLStore struct {
	db *gorm.DB
}

type userRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:50;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string {
	return "users"
}

// NewSQLStore opens dsn with driver ("postgres" or "sqlite") and migrates the
// users table.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Create inserts user with a new uuid
func (s *SQLStore) Create(ctx context.Context, user *auth.User) error {
	rec := userRecord{
		ID:           uuid.New().String(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", auth.ErrDuplicateEmail, err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = rec.ID
	user.CreatedAt = rec.CreatedAt
	user.UpdatedAt = rec.UpdatedAt
	return nil
}

// FindByEmail returns the user with email
func (s *SQLStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &auth.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

// Ping checks the database connection
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool
func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation covers drivers without an error translator.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
