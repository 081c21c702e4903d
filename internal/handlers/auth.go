package handlers

import (
	"strings"

	"github.com/filemanager/backend/internal/middleware"
	"github.com/filemanager/backend/internal/services"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth         *services.AuthService
	Verification *services.VerificationService
}

func NewAuthHandler(auth *services.AuthService, verification *services.VerificationService) *AuthHandler {
	return &AuthHandler{Auth: auth, Verification: verification}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !isValidEmail(email) {
		return utils.Error(c, fiber.StatusBadRequest, "invalid email")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	if len(req.Password) < 8 {
		return utils.Error(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	user, err := h.Auth.Register(c.Context(), name, email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"user":    user,
		"message": "registration successful, please verify your email",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "email and password are required")
	}

	token, user, err := h.Auth.Login(c.Context(), email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		return utils.Error(c, fiber.StatusBadRequest, "token is required")
	}

	if err := h.Verification.VerifyEmail(c.Context(), token); err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "email verified"})
}

// VerifyEmailLink serves the emailed link directly: the token rides in the
// query string instead of a JSON body.
func (h *AuthHandler) VerifyEmailLink(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return utils.Error(c, fiber.StatusBadRequest, "token is required")
	}

	if err := h.Verification.VerifyEmail(c.Context(), token); err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "email verified"})
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req resendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return utils.Error(c, fiber.StatusBadRequest, "email is required")
	}

	if err := h.Verification.Resend(c.Context(), email); err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "verification email sent"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, currentUser)
}
