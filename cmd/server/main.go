package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filemanager/backend/internal/config"
	"github.com/filemanager/backend/internal/database"
	"github.com/filemanager/backend/internal/handlers"
	"github.com/filemanager/backend/internal/mailer"
	"github.com/filemanager/backend/internal/middleware"
	"github.com/filemanager/backend/internal/services"
	"github.com/filemanager/backend/internal/storage"
	"github.com/filemanager/backend/pkg/logger"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpirationDays)
	if cfg.UsingInsecureJWTSecret() {
		logger.Warn("jwt_insecure_default_secret", map[string]interface{}{
			"hint": "set JWT_SECRET; tokens signed with the default are forgeable",
		})
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	objectStore, err := buildObjectStore(cfg.Storage)
	if err != nil {
		log.Fatalf("storage initialization failed: %v", err)
	}

	notifier := mailer.New(cfg.SMTP)

	verificationService := services.NewVerificationService(db, notifier, cfg.Verification)
	authService := services.NewAuthService(db, verificationService)
	fileService := services.NewFileService(db, objectStore, cfg.Storage.Bucket)

	authHandler := handlers.NewAuthHandler(authService, verificationService)
	usersHandler := handlers.NewUsersHandler(db)
	filesHandler := handlers.NewFilesHandler(fileService)

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

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":            cfg.Server.Port,
		"address":         listenAddr,
		"storage_backend": cfg.Storage.Backend,
		"email_enabled":   cfg.SMTP.Enabled,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

// buildObjectStore picks the storage variant by configuration. Both variants
// satisfy the same interface, so nothing downstream knows which one runs.
func buildObjectStore(cfg config.StorageConfig) (storage.ObjectStorage, error) {
	switch cfg.Backend {
	case "minio":
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(context.Background(), cfg.Bucket); err != nil {
			return nil, fmt.Errorf("failed ensuring bucket: %w", err)
		}
		return store, nil
	case "local":
		return storage.NewLocalStore(cfg.RootDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
