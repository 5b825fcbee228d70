package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionImport AuditAction = "import"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint   `gorm:"index" json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"`

	// e.g. "daily_record"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:36;index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// JSON snapshot of the entity after the action
	AfterData string `gorm:"type:jsonb" json:"after_data"`
}
