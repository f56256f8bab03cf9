// Package database handles the Postgres connection, schema migration
// and the idempotent seeding of the initial store owner account.
package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
)

// PostgresConfig holds connection parameters for the store database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string
}

// Connect opens a gorm connection to Postgres.
func Connect(cfg PostgresConfig) (*gorm.DB, error) {
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = "UTC"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.TimeZone,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all registered models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.Tables...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedAdmin makes sure the store owner account exists. If the account is
// present but has lost its admin flag, the flag is repaired. Seeding runs
// before any other row is inserted so the owner gets id 1.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var owner models.User
	err := db.Where("email = ?", email).First(&owner).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		owner = models.User{
			FirstName: "store",
			LastName:  "owner",
			Email:     email,
			Password:  string(hash),
			IsAdmin:   true,
		}
		if err := db.Create(&owner).Error; err != nil {
			return fmt.Errorf("failed to seed store owner: %w", err)
		}
		zap.L().Info("seeded store owner account", zap.String("email", email))
		return nil
	case err != nil:
		return fmt.Errorf("failed to query store owner: %w", err)
	}

	if !owner.IsAdmin {
		if err := db.Model(&owner).Update("is_admin", true).Error; err != nil {
			return fmt.Errorf("failed to repair store owner rights: %w", err)
		}
		zap.L().Warn("repaired store owner admin rights", zap.String("email", email))
	}
	return nil
}
