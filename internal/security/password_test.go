package security

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nivelab/authcore/internal/model"
)

func TestBcryptHasher_Roundtrip(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("pw123456")
	require.NoError(t, err)
	require.NotEqual(t, "pw123456", digest)

	require.NoError(t, h.Compare(digest, "pw123456"))
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("pw123456")
	require.NoError(t, err)

	err = h.Compare(digest, "wrong-password")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	h := NewBcryptHasher(99)

	digest, err := h.Hash("pw123456")
	require.NoError(t, err)
	require.NoError(t, h.Compare(digest, "pw123456"))
}
