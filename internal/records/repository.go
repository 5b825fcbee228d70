package records

import (
	"context"

	"ecofeast-backend/internal/models"
)

// MaxListed caps how many records a list returns.
const MaxListed = 200

type Repository interface {
	Create(ctx context.Context, rec *models.DailyRecord) error
	CreateBatch(ctx context.Context, recs []models.DailyRecord) error
	// ListRecent returns a user's records newest first.
	ListRecent(ctx context.Context, userID uint, limit int) ([]models.DailyRecord, error)
	Count(ctx context.Context, userID uint) (int64, error)
}
