package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nivelab/authcore/internal/model"
)

// Claims represents the signed access token payload.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
}

// JWT implements model.TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey string
	issuer    string
	audience  string
	accessTTL time.Duration
}

var _ model.TokenCodec = (*JWT)(nil)

// NewJWT creates a token codec. Issuer and audience are optional; when
// empty they are neither embedded nor enforced.
func NewJWT(secretKey, issuer, audience string, accessTTL time.Duration) *JWT {
	return &JWT{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		accessTTL: accessTTL,
	}
}

// Issue builds and signs an access token carrying the user's identity
// claims plus a freshly generated jti.
func (j *JWT) Issue(user model.User) (string, model.AccessClaims, error) {
	now := time.Now()
	jti := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        jti,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		Email:    user.Email,
		Username: user.Username,
	}
	if j.audience != "" {
		claims.Audience = jwt.ClaimStrings{j.audience}
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
	if err != nil {
		return "", model.AccessClaims{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, model.AccessClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		JTI:       jti,
		IssuedAt:  now,
		ExpiresAt: now.Add(j.accessTTL),
	}, nil
}

// Verify checks signature, issuer, audience and expiry. It does not
// consult the revocation list; that is layered on top by the caller.
func (j *JWT) Verify(tokenString string) (model.AccessClaims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, opts...)
	if err != nil {
		return model.AccessClaims{}, classifyError(err)
	}
	if !parsed.Valid {
		return model.AccessClaims{}, model.ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AccessClaims{}, model.ErrTokenMalformed
	}

	out := model.AccessClaims{
		UserID:   userID,
		Email:    claims.Email,
		Username: claims.Username,
		JTI:      claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// PeekExpiry extracts the expiry claim without validating the signature.
func (j *JWT) PeekExpiry(tokenString string) (time.Time, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token carries no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// AccessTTL returns the configured access token lifetime.
func (j *JWT) AccessTTL() time.Duration {
	return j.accessTTL
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrBadSignature
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return model.ErrBadIssuerOrAudience
	default:
		return model.ErrTokenMalformed
	}
}
