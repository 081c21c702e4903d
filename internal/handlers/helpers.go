package handlers

import (
	"strings"

	"github.com/filemanager/backend/internal/apperrors"
	"github.com/filemanager/backend/pkg/logger"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

func isValidEmail(value string) bool {
	at := strings.Index(value, "@")
	if at < 1 {
		return false
	}
	domain := value[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(value, " \t")
}

// respondServiceError recovers a service failure into the stable error
// envelope. Classified domain errors carry their own message and status;
// everything else is logged in full and surfaced as a generic internal error.
func respondServiceError(c *fiber.Ctx, err error) error {
	if apperrors.IsDomain(err) {
		return utils.Error(c, apperrors.StatusFor(err), err.Error())
	}

	logger.Error("unhandled_service_error", err, map[string]interface{}{
		"method": c.Method(),
		"path":   c.Path(),
	})
	return utils.Error(c, fiber.StatusInternalServerError, "internal error")
}
