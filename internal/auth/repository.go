package auth

import (
	"context"
	"errors"

	"ecofeast-backend/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}
