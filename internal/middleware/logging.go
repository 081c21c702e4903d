package middleware

import (
	"time"

	"github.com/filemanager/backend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"ip":          c.IP(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if user := GetCurrentUser(c); user != nil {
			fields["user_id"] = user.ID.String()
		}
		logger.Info("http_request", fields)

		return err
	}
}
