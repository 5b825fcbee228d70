package audit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ecofeast-backend/internal/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) ListByUser(ctx context.Context, userID uint, entityType string, limit int) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// MemoryStore keeps entries in process; used by tests and local runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uint(len(s.entries) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID uint, entityType string, limit int) ([]models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AuditLog, 0)
	for _, e := range s.entries {
		if e.UserID != userID || (entityType != "" && e.EntityType != entityType) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
