package records

import (
	"context"
	"fmt"

	"ecofeast-backend/internal/models"

	"gorm.io/gorm"
)

const batchSize = 500

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, rec *models.DailyRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (r *GormRepository) CreateBatch(ctx context.Context, recs []models.DailyRecord) error {
	if len(recs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(recs, batchSize).Error; err != nil {
		return fmt.Errorf("create %d records: %w", len(recs), err)
	}
	return nil
}

func (r *GormRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]models.DailyRecord, error) {
	var recs []models.DailyRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, date DESC, id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list records for user %d: %w", userID, err)
	}
	return recs, nil
}

func (r *GormRepository) Count(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.DailyRecord{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count records for user %d: %w", userID, err)
	}
	return n, nil
}
