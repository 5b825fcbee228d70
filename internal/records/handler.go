package records

import (
	"errors"
	"fmt"
	"time"

	"ecofeast-backend/internal/audit"
	"ecofeast-backend/internal/auth"
	"ecofeast-backend/internal/menu"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const entityType = "daily_record"

type CreateRecordRequest struct {
	Date     string `json:"date"` // "2025-12-09"
	ItemID   string `json:"itemId"`
	Prepared *int   `json:"prepared"`
	Sold     *int   `json:"sold"`
}

// GET /api/records
func ListRecordsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFrom(c)
		if err != nil {
			return err
		}

		recs, err := repo.ListRecent(c.UserContext(), userID, MaxListed)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "unable to fetch records")
		}
		return c.JSON(recs)
	}
}

// POST /api/records
//
// The record is returned only after the store accepted it, so clients can
// prepend it to their list without guessing.
func CreateRecordHandler(repo Repository, catalog *menu.Catalog, auditStore audit.Store, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFrom(c)
		if err != nil {
			return err
		}

		var body CreateRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid record payload")
		}
		if body.ItemID == "" || body.Prepared == nil || body.Sold == nil {
			return fiber.NewError(fiber.StatusBadRequest, "date, itemId, prepared and sold are required")
		}

		item, ok := catalog.ByID(body.ItemID)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown menu item %q", body.ItemID))
		}

		rec, err := NewDailyRecord(userID, body.Date, item, *body.Prepared, *body.Sold, time.Now())
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrNegativeCount) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid record payload")
		}

		if err := repo.Create(c.UserContext(), &rec); err != nil {
			log.Error("create record failed", zap.Uint("user_id", userID), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "unable to save record")
		}

		if err := audit.WriteLog(c.UserContext(), auditStore, audit.LogOptions{
			UserID:      userID,
			UserName:    auth.UsernameFrom(c),
			EntityType:  entityType,
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s on %s: prepared %d, sold %d", rec.ItemName, rec.Date, rec.Prepared, rec.Sold),
			After:       rec,
		}); err != nil {
			log.Warn("audit log not written", zap.String("record_id", rec.ID), zap.Error(err))
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}
