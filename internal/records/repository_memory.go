package records

import (
	"context"
	"sort"
	"sync"

	"ecofeast-backend/internal/models"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	byUser map[uint][]models.DailyRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byUser: make(map[uint][]models.DailyRecord)}
}

func (r *InMemoryRepository) Create(_ context.Context, rec *models.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[rec.UserID] = append(r.byUser[rec.UserID], *rec)
	return nil
}

func (r *InMemoryRepository) CreateBatch(_ context.Context, recs []models.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range recs {
		r.byUser[rec.UserID] = append(r.byUser[rec.UserID], rec)
	}
	return nil
}

func (r *InMemoryRepository) ListRecent(_ context.Context, userID uint, limit int) ([]models.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byUser[userID]
	out := make([]models.DailyRecord, len(stored))
	copy(out, stored)
	// same ordering as the SQL repository: created_at, date, id, all descending
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.ID > b.ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Count(_ context.Context, userID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byUser[userID])), nil
}
