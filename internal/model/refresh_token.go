package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore holds outstanding refresh tokens keyed by the opaque
// token string. Tokens are single-use: Consume deletes the record, and the
// caller immediately issues a replacement (rotation).
type RefreshTokenStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	// Consume atomically checks and deletes the record. A second call
	// with the same token always fails with ErrRefreshTokenInvalid.
	Consume(ctx context.Context, token string) (uuid.UUID, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	SweepExpired(ctx context.Context) (int, error)
}

// RefreshTokenRecord binds an opaque refresh token to its owner and expiry.
type RefreshTokenRecord struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}
