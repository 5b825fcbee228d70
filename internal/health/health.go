package health

import (
	"ecofeast-backend/internal/llm"

	"github.com/gofiber/fiber/v2"
)

// GET /api/health
func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// GET /api/gemini-status
func GeminiStatusHandler(client llm.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"gemini_key_set": client.Configured()})
	}
}
