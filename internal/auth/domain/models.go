package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is a staff account in the dashboard. Credentials live in the
// backing relational store; the fixed schema mirrors the dashboard's
// users table.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Username     string       `gorm:"type:text;uniqueIndex;not null"`
	Email        string       `gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string       `gorm:"type:text;not null"`
	Role         string       `gorm:"type:text;not null;default:'employee'"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Identity is what a verified token or login resolves to.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Service interface {
	// Login verifies identifier (email or username) + password against
	// the credential store and returns the matching user.
	Login(ctx context.Context, identifier, password string) (*User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrPasswordTooLong    = errors.New("password_too_long")
	ErrStoreUnavailable   = errors.New("credential_store_unavailable")
)
