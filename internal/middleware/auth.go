package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/config"
	"github.com/example/scentquiz/internal/utils"
)

const (
	adminContextKey = "currentAdmin"

	// RoleAdmin is the only role tokens are issued for.
	RoleAdmin = "admin"
)

// AdminAuth validates bearer JWTs and loads the admin name into context.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.JWTSecret == "" {
			return fiber.NewError(fiber.StatusServiceUnavailable, "admin access is not configured")
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		subject, role, err := utils.ParseToken(cfg.JWTSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if role != RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}

		c.Locals(adminContextKey, subject)
		return c.Next()
	}
}

// CurrentAdmin extracts the authenticated admin name from context.
func CurrentAdmin(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals(adminContextKey).(string)
	return name, ok && name != ""
}
