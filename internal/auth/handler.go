package auth

import (
	"context"
	"errors"
	"strings"

	"ecofeast-backend/internal/config"
	"ecofeast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role,omitempty"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// CreateUser hashes the password and stores a user with the default role.
func CreateUser(ctx context.Context, repo Repository, username, password, email string) (*models.User, error) {
	return createUser(ctx, repo, username, password, email, models.RoleUser)
}

func createUser(ctx context.Context, repo Repository, username, password, email string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(strings.ToLower(email)),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func parseRegister(c *fiber.Ctx) (RegisterRequest, error) {
	var body RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return body, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		return body, fiber.NewError(fiber.StatusBadRequest, "username and password required")
	}
	if len(body.Password) > MaxPasswordBytes {
		return body, fiber.NewError(fiber.StatusBadRequest, "password must be at most 72 bytes")
	}
	return body, nil
}

func registerAs(c *fiber.Ctx, repo Repository, cfg *config.Config, body RegisterRequest, role models.UserRole) error {
	user, err := createUser(c.UserContext(), repo, body.Username, body.Password, body.Email, role)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return fiber.NewError(fiber.StatusConflict, "username already exists")
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return fiber.NewError(fiber.StatusBadRequest, "password must be at most 72 bytes")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "registration failed")
	}

	token, err := GenerateToken(cfg.JWTSecret, cfg.JWTTTL, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(TokenResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role},
	})
}

// POST /api/auth/register
func RegisterHandler(repo Repository, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseRegister(c)
		if err != nil {
			return err
		}
		return registerAs(c, repo, cfg, body, models.RoleUser)
	}
}

// POST /api/auth/register-admin
// Bootstraps the first admin account; closed once any admin exists.
func RegisterAdminHandler(repo Repository, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseRegister(c)
		if err != nil {
			return err
		}

		n, err := repo.CountByRole(c.UserContext(), models.RoleAdmin)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "registration failed")
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusForbidden, "admin already exists")
		}

		return registerAs(c, repo, cfg, body, models.RoleAdmin)
	}
}

// POST /api/auth/login
func LoginHandler(repo Repository, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password required")
		}

		user, err := repo.FindByUsername(c.UserContext(), body.Username)
		if errors.Is(err, ErrUserNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "login failed")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTTTL, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "login failed")
		}

		return c.JSON(TokenResponse{
			Token: token,
			User:  UserResponse{ID: user.ID, Username: user.Username, Email: user.Email},
		})
	}
}

// GET /api/auth/me
func MeHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserIDFrom(c)
		if err != nil {
			return err
		}

		user, err := repo.FindByID(c.UserContext(), userID)
		if errors.Is(err, ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load user")
		}

		return c.JSON(UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
	}
}
