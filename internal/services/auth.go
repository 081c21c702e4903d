package services

import (
	"context"
	"errors"

	"github.com/filemanager/backend/internal/apperrors"
	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/pkg/logger"
	"github.com/filemanager/backend/pkg/utils"
	"gorm.io/gorm"
)

// AuthService handles registration and login. Accounts start disabled and
// cannot log in until the verification service enables them.
type AuthService struct {
	DB           *gorm.DB
	Verification *VerificationService
}

func NewAuthService(db *gorm.DB, verification *VerificationService) *AuthService {
	return &AuthService{DB: db, Verification: verification}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		Enabled:      false,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.Verification.GenerateAndSend(ctx, &user); err != nil {
		return nil, err
	}

	logger.InfoWithUser(user.ID.String(), "user_registered", map[string]interface{}{
		"email": email,
	})
	return &user, nil
}

// Login checks credentials before the activation state, so a failed login
// against an unverified account is indistinguishable from any other bad
// credential attempt. Unknown email and wrong password surface the same
// error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.Enabled {
		return "", nil, apperrors.ErrAccountNotVerified
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return "", nil, err
	}

	logger.InfoWithUser(user.ID.String(), "user_logged_in", map[string]interface{}{
		"email": email,
	})
	return token, &user, nil
}
