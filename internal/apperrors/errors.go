// Package apperrors defines the sentinel errors shared by services and
// handlers. Callers should use errors.Is to match these values.
package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// Lookup errors.
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Verification lifecycle errors.
	ErrTokenExpired    = errors.New("verification token has expired")
	ErrAlreadyVerified = errors.New("email is already verified")

	// Authentication errors. ErrInvalidCredentials deliberately covers both
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("email not verified")

	// Upload validation errors.
	ErrEmptyFile       = errors.New("file cannot be empty")
	ErrFileTooLarge    = errors.New("file size exceeds maximum allowed size")
	ErrInvalidFileName = errors.New("file name cannot be empty")

	// ErrStorageInconsistency means a file record exists but its backing blob
	// is gone. This is a broken invariant, never reported as not-found.
	ErrStorageInconsistency = errors.New("stored object missing for existing record")
)

// StatusFor maps a domain error to its HTTP status. Unknown errors map to 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrAlreadyVerified),
		errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrInvalidFileName):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrAccountNotVerified):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// IsDomain reports whether err is one of the classified domain errors above,
// meaning its message is safe to surface to the caller.
func IsDomain(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound,
		ErrDuplicateEmail,
		ErrTokenExpired,
		ErrAlreadyVerified,
		ErrInvalidCredentials,
		ErrAccountNotVerified,
		ErrEmptyFile,
		ErrFileTooLarge,
		ErrInvalidFileName,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
