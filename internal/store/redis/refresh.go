package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nivelab/authcore/internal/model"
)

const (
	refreshKeyPrefix  = "auth:refresh:"
	refreshUserPrefix = "auth:refresh:user:"
)

// RefreshTokenStore keeps refresh tokens in redis so multiple instances
// share one token state. Record expiry rides on redis key TTLs; a per-user
// set indexes outstanding tokens for bulk revocation.
type RefreshTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ model.RefreshTokenStore = (*RefreshTokenStore)(nil)

func NewRefreshTokenStore(rdb *redis.Client, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{rdb: rdb, ttl: ttl}
}

func (s *RefreshTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(buf)

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, refreshKeyPrefix+token, userID.String(), s.ttl)
	pipe.SAdd(ctx, refreshUserPrefix+userID.String(), token)
	pipe.Expire(ctx, refreshUserPrefix+userID.String(), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return token, nil
}

// Consume relies on GETDEL for the atomic check-and-delete.
func (s *RefreshTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, model.ErrRefreshTokenInvalid
		}
		return uuid.Nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, model.ErrRefreshTokenInvalid
	}

	s.rdb.SRem(ctx, refreshUserPrefix+userID.String(), token)
	return userID, nil
}

func (s *RefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	setKey := refreshUserPrefix + userID.String()

	tokens, err := s.rdb.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list refresh tokens for user: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, refreshKeyPrefix+token)
	}
	pipe.Del(ctx, setKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user: %w", err)
	}
	return nil
}

// SweepExpired is a no-op: redis evicts expired keys natively, and the
// per-user index sets carry the same TTL as the records they index.
func (s *RefreshTokenStore) SweepExpired(ctx context.Context) (int, error) {
	return 0, nil
}
