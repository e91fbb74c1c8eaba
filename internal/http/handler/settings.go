package handler

import (
	"github.com/gofiber/fiber/v2"

	"smartsuite/internal/http/middleware"
	"smartsuite/internal/service"
)

// GetSettings returns the caller's reminder preferences; absent settings
// resolve to the all-enabled defaults.
func GetSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}
		s, err := svc.Get(c.UserContext(), claims.UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// UpdateSettings replaces the caller's reminder preferences.
func UpdateSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}

		var in service.SettingsUpdate
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		s, err := svc.Update(c.UserContext(), claims.UserID, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// RunSweep triggers one expiry-notification sweep on demand and reports
// its counters.
func RunSweep(sw service.Sweeper) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := sw.Run(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
