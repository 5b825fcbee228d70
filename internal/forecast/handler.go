package forecast

import (
	"ecofeast-backend/internal/llm"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Request struct {
	History []models.DailyRecord `json:"history"`
	Menu    []models.MenuItem    `json:"menu"`
}

// POST /api/forecast
func ForecastHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid forecast payload")
		}
		if len(body.History) == 0 || len(body.Menu) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "history and menu are required")
		}

		res, err := svc.Forecast(c.UserContext(), body.History, body.Menu)
		if err != nil {
			return llm.FiberError(err, "failed to generate forecast")
		}
		return c.JSON(res)
	}
}
