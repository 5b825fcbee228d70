package auth

import (
	"context"
	"sync"
	"time"

	"ecofeast-backend/internal/models"
)

type InMemoryUserRepository struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		nextID: 1,
		users:  make(map[uint]models.User),
	}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}

	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *InMemoryUserRepository) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
