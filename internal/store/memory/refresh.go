package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nivelab/authcore/internal/model"
)

// RefreshTokenStore keeps refresh token records in a process-local map.
// Suitable for single-instance deployments; multi-instance deployments
// plug in the redis implementation behind the same interface.
type RefreshTokenStore struct {
	mu      sync.Mutex
	records map[string]model.RefreshTokenRecord
	ttl     time.Duration
}

var _ model.RefreshTokenStore = (*RefreshTokenStore)(nil)

func NewRefreshTokenStore(ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{
		records: make(map[string]model.RefreshTokenRecord),
		ttl:     ttl,
	}
}

func (s *RefreshTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[token] = model.RefreshTokenRecord{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// Consume is a single locked check-and-delete: the same token can never be
// consumed twice, and a stale record found on a failed lookup is removed.
func (s *RefreshTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[token]
	if !ok {
		return uuid.Nil, model.ErrRefreshTokenInvalid
	}
	delete(s.records, token)

	if time.Now().After(rec.ExpiresAt) {
		return uuid.Nil, model.ErrRefreshTokenInvalid
	}
	return rec.UserID, nil
}

func (s *RefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, rec := range s.records {
		if rec.UserID == userID {
			delete(s.records, token)
		}
	}
	return nil
}

func (s *RefreshTokenStore) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, rec := range s.records {
		if now.After(rec.ExpiresAt) {
			delete(s.records, token)
			removed++
		}
	}
	return removed, nil
}

// newOpaqueToken returns 256 bits of hex-encoded randomness.
func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
