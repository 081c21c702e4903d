package database

import (
	"fmt"
	"time"

	"github.com/filemanager/backend/internal/config"
	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedAdminUser(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.File{},
	)
}

// seedAdminUser creates a first admin account on an empty database. The seed
// account is pre-verified so it can log in without the email flow.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		Name:            "System Admin",
		Email:           "admin@filemanager.local",
		PasswordHash:    hash,
		Role:            models.UserRoleAdmin,
		Enabled:         true,
		EmailVerifiedAt: &now,
	}

	return db.Create(&admin).Error
}
