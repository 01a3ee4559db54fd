package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenCodec creates and parses signed access tokens. It holds no state:
// a token's integrity is guaranteed by its signature, not by any store.
type TokenCodec interface {
	Issue(user User) (string, AccessClaims, error)
	Verify(token string) (AccessClaims, error)
	// PeekExpiry extracts the expiry claim without verifying the
	// signature. Used when blacklisting a token whose validity is
	// irrelevant but whose natural expiry bounds the blacklist entry.
	PeekExpiry(token string) (time.Time, error)
	AccessTTL() time.Duration
}

// AccessClaims is the identity payload embedded in an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Email     string
	Username  string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenBundle is the shape returned to callers on register, login and
// refresh.
type TokenBundle struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}
