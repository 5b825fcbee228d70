package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:100;uniqueIndex;not null"`
	Email        string   `gorm:"size:100"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
