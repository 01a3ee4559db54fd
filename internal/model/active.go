package model

import (
	"context"

	"github.com/google/uuid"
)

// ActiveTokenIndex maps each user to the set of access tokens currently
// considered part of a live session. It is advisory allow-state layered on
// top of the RevocationList deny-list, not a security boundary by itself.
type ActiveTokenIndex interface {
	Track(ctx context.Context, userID uuid.UUID, token string) error
	Untrack(ctx context.Context, userID uuid.UUID, token string) error
	IsActive(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	// Clear atomically removes and returns the user's full token set, so
	// the caller can blacklist each token exactly once.
	Clear(ctx context.Context, userID uuid.UUID) ([]string, error)
}
