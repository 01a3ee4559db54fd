package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivelab/authcore/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:       uuid.New(),
		Email:    "alice@x.com",
		Username: "alice",
		IsActive: true,
	}
}

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", "authcore", "api", time.Hour)
	u := testUser()

	signed, issued, err := j.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, issued.JTI)

	got, err := j.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, issued.JTI, got.JTI)
}

func TestJWT_FreshJTIPerIssue(t *testing.T) {
	j := NewJWT("secret", "", "", time.Hour)
	u := testUser()

	_, first, err := j.Issue(u)
	require.NoError(t, err)
	_, second, err := j.Issue(u)
	require.NoError(t, err)

	assert.NotEqual(t, first.JTI, second.JTI)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", "", "", -time.Minute)
	u := testUser()

	signed, _, err := j.Issue(u)
	require.NoError(t, err)

	_, err = j.Verify(signed)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_BadSignature(t *testing.T) {
	issuer := NewJWT("secret-a", "", "", time.Hour)
	verifier := NewJWT("secret-b", "", "", time.Hour)

	signed, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, model.ErrBadSignature)
}

func TestJWT_IssuerMismatch(t *testing.T) {
	issuer := NewJWT("secret", "service-a", "", time.Hour)
	verifier := NewJWT("secret", "service-b", "", time.Hour)

	signed, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, model.ErrBadIssuerOrAudience)
}

func TestJWT_AudienceMismatch(t *testing.T) {
	issuer := NewJWT("secret", "", "aud-a", time.Hour)
	verifier := NewJWT("secret", "", "aud-b", time.Hour)

	signed, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, model.ErrBadIssuerOrAudience)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret", "", "", time.Hour)

	_, err := j.Verify("not-a-token")
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_PeekExpiry(t *testing.T) {
	j := NewJWT("secret", "", "", time.Hour)

	signed, issued, err := j.Issue(testUser())
	require.NoError(t, err)

	exp, err := j.PeekExpiry(signed)
	require.NoError(t, err)
	assert.WithinDuration(t, issued.ExpiresAt, exp, time.Second)

	_, err = j.PeekExpiry("garbage")
	require.Error(t, err)
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"24h", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"", DefaultTTL},
		{"7w", DefaultTTL},
		{"h24", DefaultTTL},
		{"-5m", DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTTL(tt.in))
		})
	}
}
