package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(&models.User{}, &models.File{}); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	return db
}

type sentEmail struct {
	To    string
	Name  string
	Token string
}

// recordingMailer captures handed-off emails; with fail set it simulates a
// delivery outage.
type recordingMailer struct {
	sent []sentEmail
	fail bool
}

func (m *recordingMailer) SendVerificationEmail(ctx context.Context, toAddress, displayName, token string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentEmail{To: toAddress, Name: displayName, Token: token})
	return nil
}

func createUser(t *testing.T, db *gorm.DB, email string, enabled bool) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		Enabled:      enabled,
	}
	if enabled {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		t.Fatalf("failed reloading user %s: %v", email, err)
	}
	return &user
}
