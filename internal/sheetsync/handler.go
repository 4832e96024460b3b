package sheetsync

import (
	"freightdesk-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// POST /api/sheet-sync/run
func RunSyncHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := RunFull(); err != nil {
			logger.Get().Error("Sheet sync run failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Sheet sync failed")
		}

		status, err := GetStatus()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sheet sync is not configured")
		}
		return c.JSON(status)
	}
}

// GET /api/sheet-sync/status
func StatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := GetStatus()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sheet sync is not configured")
		}
		return c.JSON(status)
	}
}
