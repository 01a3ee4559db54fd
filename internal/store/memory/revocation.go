package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nivelab/authcore/internal/logger"
	"github.com/nivelab/authcore/internal/model"
)

// ExpiryPeeker extracts a token's expiry claim without verifying it.
type ExpiryPeeker interface {
	PeekExpiry(token string) (time.Time, error)
}

// RevocationList keeps blacklisted access tokens in a process-local map.
// Entries are bounded by the token's own expiry: reads delete expired
// entries lazily, and the reaper sweeps the rest.
type RevocationList struct {
	mu      sync.Mutex
	entries map[string]model.RevocationEntry
	peeker  ExpiryPeeker
	logger  *logger.Logger
}

var _ model.RevocationList = (*RevocationList)(nil)

func NewRevocationList(peeker ExpiryPeeker, logger *logger.Logger) *RevocationList {
	return &RevocationList{
		entries: make(map[string]model.RevocationEntry),
		peeker:  peeker,
		logger:  logger,
	}
}

// Add is best-effort: a token with no parseable expiry is logged and
// dropped. Such a token cannot be replayed as a valid credential, and the
// caller (logout) must succeed regardless.
func (l *RevocationList) Add(ctx context.Context, token string, userID uuid.UUID, reason string) error {
	expiresAt, err := l.peeker.PeekExpiry(token)
	if err != nil {
		l.logger.Warn("invalid token format, cannot be added to revocation list",
			"user_id", userID,
			"error", err.Error())
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[token] = model.RevocationEntry{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		Reason:    reason,
	}

	l.logger.Info("token added to revocation list",
		"user_id", userID,
		"reason", reason)
	return nil
}

func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(l.entries, token)
		return false, nil
	}
	return true, nil
}

func (l *RevocationList) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for token, entry := range l.entries {
		if now.After(entry.ExpiresAt) {
			delete(l.entries, token)
			removed++
		}
	}
	return removed, nil
}

func (l *RevocationList) Stats(ctx context.Context) (model.RevocationStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := model.RevocationStats{
		Total:  len(l.entries),
		ByUser: make(map[uuid.UUID]int),
	}
	for _, entry := range l.entries {
		stats.ByUser[entry.UserID]++
	}
	return stats, nil
}
