package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevocationList is the authoritative deny-list for access tokens that must
// stop working before their natural expiry. Entries self-expire at the
// token's own expiry claim, after which the signature check alone rejects
// the token and the entry is redundant.
type RevocationList interface {
	// Add records a revocation. Implementations extract the token's
	// expiry themselves; a token with no parseable expiry is logged and
	// dropped, since it cannot be replayed as a valid credential anyway.
	Add(ctx context.Context, token string, userID uuid.UUID, reason string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	SweepExpired(ctx context.Context) (int, error)
	Stats(ctx context.Context) (RevocationStats, error)
}

// RevocationEntry describes one blacklisted access token.
type RevocationEntry struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	Reason    string
}

// RevocationStats summarizes the deny-list for observability.
type RevocationStats struct {
	Total  int
	ByUser map[uuid.UUID]int
}
