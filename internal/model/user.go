package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// User represents a stored user account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Nickname     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// PasswordHasher hashes plaintext passwords and verifies stored digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(digest string, password string) error
}
