package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/filemanager/backend/internal/config"
	"github.com/filemanager/backend/internal/mailer"
	"github.com/filemanager/backend/internal/middleware"
	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/internal/services"
	"github.com/filemanager/backend/internal/storage"
	"github.com/filemanager/backend/pkg/logger"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", "filemanager-test", 15)
	})

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

	objectStore := storage.NewLocalStore(t.TempDir())
	notifier := mailer.New(config.SMTPConfig{Enabled: false, BaseURL: "http://localhost:3001"})

	verificationService := services.NewVerificationService(db, notifier, config.VerificationConfig{TokenExpirationHours: 24})
	authService := services.NewAuthService(db, verificationService)
	fileService := services.NewFileService(db, objectStore, "filemanager-test")

	authHandler := NewAuthHandler(authService, verificationService)
	usersHandler := NewUsersHandler(db)
	filesHandler := NewFilesHandler(fileService)
	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: services.MaxFileSize + 1024*1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/verify-email", authHandler.VerifyEmail)
	authRoutes.Get("/verify-email", authHandler.VerifyEmailLink)
	authRoutes.Post("/resend-verification", authHandler.ResendVerification)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	userRoutes := api.Group("/users", authMiddleware.RequireAuth, middleware.AdminOnly)
	userRoutes.Get("/", usersHandler.List)

	fileRoutes := api.Group("/files", authMiddleware.RequireAuth)
	fileRoutes.Post("/upload", filesHandler.Upload)
	fileRoutes.Get("/", filesHandler.List)
	fileRoutes.Get("/stats", filesHandler.Stats)
	fileRoutes.Get("/:id/download", filesHandler.Download)
	fileRoutes.Get("/:id", filesHandler.Get)
	fileRoutes.Delete("/:id", filesHandler.Delete)

	return &testEnv{app: app, db: db}
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	now := time.Now()
	user := &models.User{
		Name:            "Test User",
		Email:           email,
		PasswordHash:    hash,
		Role:            role,
		Enabled:         true,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func performUpload(t *testing.T, app *fiber.App, token, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed creating multipart section: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed writing multipart content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed closing multipart writer: %v", err)
	}

	return performRequest(t, app, http.MethodPost, "/api/files/upload", body, map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  writer.FormDataContentType(),
	})
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}

func verificationTokenFor(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()

	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		t.Fatalf("failed loading user %s: %v", email, err)
	}
	if user.VerificationToken == nil {
		t.Fatalf("expected user %s to have a verification token", email)
	}
	return *user.VerificationToken
}
