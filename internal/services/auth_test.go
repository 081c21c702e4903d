package services

import (
	"context"
	"errors"
	"testing"

	"github.com/filemanager/backend/internal/apperrors"
	"github.com/filemanager/backend/internal/config"
	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/pkg/utils"
)

func newAuthService(t *testing.T) (*AuthService, *recordingMailer) {
	t.Helper()

	utils.ConfigureJWT("auth-service-test-secret", "filemanager-test", 15)

	db := newTestDB(t)
	m := &recordingMailer{}
	verification := NewVerificationService(db, m, config.VerificationConfig{TokenExpirationHours: 24})
	return NewAuthService(db, verification), m
}

func TestRegisterCreatesDisabledAccountWithToken(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@x.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	stored := reloadUser(t, svc.DB, "alice@x.com")
	if stored.Enabled {
		t.Error("expected account to start disabled")
	}
	if stored.EmailVerifiedAt != nil {
		t.Error("expected verifiedAt to be unset")
	}
	if stored.Role != models.UserRoleUser {
		t.Errorf("expected role %q, got %q", models.UserRoleUser, stored.Role)
	}
	if stored.VerificationToken == nil {
		t.Fatal("expected a verification token to be stored")
	}
	if stored.PasswordHash == "password123" {
		t.Error("expected password to be hashed")
	}
	if len(m.sent) != 1 || m.sent[0].To != "alice@x.com" {
		t.Fatalf("expected one verification email to alice@x.com, got %+v", m.sent)
	}
	if user.ID != stored.ID {
		t.Error("expected returned user to match stored record")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@x.com", "password123"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, "Other Alice", "alice@x.com", "different-pass")
	if !errors.Is(err, apperrors.ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestLoginLifecycle(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@x.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, _, unknownErr := svc.Login(ctx, "nobody@x.com", "password123")
		_, _, wrongPassErr := svc.Login(ctx, "alice@x.com", "wrong-password")

		if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
			t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", unknownErr)
		}
		if !errors.Is(wrongPassErr, apperrors.ErrInvalidCredentials) {
			t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", wrongPassErr)
		}
	})

	t.Run("valid credentials on unverified account fail with not-verified", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@x.com", "password123")
		if !errors.Is(err, apperrors.ErrAccountNotVerified) {
			t.Fatalf("err = %v, want ErrAccountNotVerified", err)
		}
	})

	t.Run("login succeeds after verification and token carries subject and role", func(t *testing.T) {
		stored := reloadUser(t, svc.DB, "alice@x.com")
		if err := svc.Verification.VerifyEmail(ctx, *stored.VerificationToken); err != nil {
			t.Fatalf("VerifyEmail failed: %v", err)
		}

		token, user, err := svc.Login(ctx, "alice@x.com", "password123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if token == "" {
			t.Fatal("expected a non-empty token")
		}
		if user == nil || user.Email != "alice@x.com" {
			t.Fatalf("expected profile projection for alice@x.com, got %+v", user)
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			t.Fatalf("issued token failed validation: %v", err)
		}
		if claims.Subject != "alice@x.com" {
			t.Errorf("expected subject %q, got %q", "alice@x.com", claims.Subject)
		}
		if len(claims.Scopes) != 1 || claims.Scopes[0] != string(models.UserRoleUser) {
			t.Errorf("expected scopes to carry the account role, got %v", claims.Scopes)
		}
	})
}
