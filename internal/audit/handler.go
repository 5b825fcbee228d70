package audit

import (
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxAuditLogs = 100

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/audit-logs?entity_type=daily_record
func ListAuditLogsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFrom(c)
		if err != nil {
			return err
		}

		logs, err := store.ListByUser(c.UserContext(), userID, c.Query("entity_type"), maxAuditLogs)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list audit logs")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
			})
		}
		return c.JSON(resp)
	}
}
