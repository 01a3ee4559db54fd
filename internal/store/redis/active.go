package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nivelab/authcore/internal/model"
)

const activeKeyPrefix = "auth:active:"

// ActiveTokenIndex keeps each user's live token set in redis. The set TTL
// matches the access token lifetime so abandoned sessions age out on
// their own.
type ActiveTokenIndex struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ model.ActiveTokenIndex = (*ActiveTokenIndex)(nil)

func NewActiveTokenIndex(rdb *redis.Client, ttl time.Duration) *ActiveTokenIndex {
	return &ActiveTokenIndex{rdb: rdb, ttl: ttl}
}

func (i *ActiveTokenIndex) Track(ctx context.Context, userID uuid.UUID, token string) error {
	key := activeKeyPrefix + userID.String()

	pipe := i.rdb.TxPipeline()
	pipe.SAdd(ctx, key, token)
	pipe.Expire(ctx, key, i.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to track active token: %w", err)
	}
	return nil
}

func (i *ActiveTokenIndex) Untrack(ctx context.Context, userID uuid.UUID, token string) error {
	if err := i.rdb.SRem(ctx, activeKeyPrefix+userID.String(), token).Err(); err != nil {
		return fmt.Errorf("failed to untrack active token: %w", err)
	}
	return nil
}

func (i *ActiveTokenIndex) IsActive(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	active, err := i.rdb.SIsMember(ctx, activeKeyPrefix+userID.String(), token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check active token: %w", err)
	}
	return active, nil
}

func (i *ActiveTokenIndex) Clear(ctx context.Context, userID uuid.UUID) ([]string, error) {
	key := activeKeyPrefix + userID.String()

	pipe := i.rdb.TxPipeline()
	members := pipe.SMembers(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear active tokens: %w", err)
	}
	return members.Val(), nil
}
