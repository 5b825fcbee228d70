package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"ecofeast-backend/internal/models"
)

type Store interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByUser(ctx context.Context, userID uint, entityType string, limit int) ([]models.AuditLog, error)
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	After       any
}

func WriteLog(ctx context.Context, store Store, opts LogOptions) error {
	// jsonb column: store JSON null rather than an empty string
	afterStr := "null"
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		AfterData:   afterStr,
	}

	if err := store.Create(ctx, &entry); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}
