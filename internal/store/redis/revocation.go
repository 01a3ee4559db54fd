package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nivelab/authcore/internal/logger"
	"github.com/nivelab/authcore/internal/model"
)

const revokedKeyPrefix = "auth:revoked:"

// ExpiryPeeker extracts a token's expiry claim without verifying it.
type ExpiryPeeker interface {
	PeekExpiry(token string) (time.Time, error)
}

type revocationValue struct {
	UserID uuid.UUID `json:"user_id"`
	Reason string    `json:"reason"`
}

// RevocationList keeps the access token deny-list in redis. Each entry's
// key TTL equals the token's remaining natural lifetime, so entries
// self-expire exactly when the signature check alone starts rejecting the
// token.
type RevocationList struct {
	rdb    *redis.Client
	peeker ExpiryPeeker
	logger *logger.Logger
}

var _ model.RevocationList = (*RevocationList)(nil)

func NewRevocationList(rdb *redis.Client, peeker ExpiryPeeker, logger *logger.Logger) *RevocationList {
	return &RevocationList{rdb: rdb, peeker: peeker, logger: logger}
}

func (l *RevocationList) Add(ctx context.Context, token string, userID uuid.UUID, reason string) error {
	expiresAt, err := l.peeker.PeekExpiry(token)
	if err != nil {
		l.logger.Warn("invalid token format, cannot be added to revocation list",
			"user_id", userID,
			"error", err.Error())
		return nil
	}

	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		// already unverifiable by expiry alone
		return nil
	}

	val, err := json.Marshal(revocationValue{UserID: userID, Reason: reason})
	if err != nil {
		return fmt.Errorf("failed to marshal revocation entry: %w", err)
	}

	if err := l.rdb.Set(ctx, revokedKeyPrefix+token, val, remaining).Err(); err != nil {
		return fmt.Errorf("failed to persist revocation entry: %w", err)
	}

	l.logger.Info("token added to revocation list",
		"user_id", userID,
		"reason", reason)
	return nil
}

func (l *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation entry: %w", err)
	}
	return n > 0, nil
}

// SweepExpired is a no-op: entries carry a key TTL and redis evicts them.
func (l *RevocationList) SweepExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (l *RevocationList) Stats(ctx context.Context) (model.RevocationStats, error) {
	stats := model.RevocationStats{ByUser: make(map[uuid.UUID]int)}

	iter := l.rdb.Scan(ctx, 0, revokedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		raw, err := l.rdb.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var val revocationValue
		if err := json.Unmarshal(raw, &val); err != nil {
			continue
		}
		stats.Total++
		stats.ByUser[val.UserID]++
	}
	if err := iter.Err(); err != nil {
		return model.RevocationStats{}, fmt.Errorf("failed to scan revocation entries: %w", err)
	}
	return stats, nil
}
