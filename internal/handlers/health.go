package handlers

import (
	"github.com/Jean612/SoundScape/internal/database"
	"github.com/gofiber/fiber/v2"
)

// HealthCheck godoc
// @Summary Health check endpoint
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

// ReadinessCheck verifies the database connection is usable.
func ReadinessCheck(db *database.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// LivenessCheck reports process liveness for orchestrator probes.
func LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}
