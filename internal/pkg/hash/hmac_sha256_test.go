package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSHA256(t *testing.T) {
	// Arrange
	h, err := NewHMACSHA256("test-secret")
	require.NoError(t, err)

	salt, err := h.Salt()
	require.NoError(t, err)
	require.Len(t, salt, SaltSize*2)

	// Act
	digest := h.Hash(salt, "4821")

	// Assert
	assert.Len(t, digest, 64)
	assert.NotContains(t, digest, "4821")
	assert.True(t, h.Verify(digest, salt, "4821"))
	assert.False(t, h.Verify(digest, salt, "4822"))
	assert.False(t, h.Verify(digest, "other-salt", "4821"))
}

func TestHMACSHA256_SaltChangesDigest(t *testing.T) {
	h, err := NewHMACSHA256("test-secret")
	require.NoError(t, err)

	a, err := h.Salt()
	require.NoError(t, err)
	b, err := h.Salt()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, h.Hash(a, "1234"), h.Hash(b, "1234"))
}

func TestHMACSHA256_KeyMatters(t *testing.T) {
	h1, err := NewHMACSHA256("one")
	require.NoError(t, err)
	h2, err := NewHMACSHA256("two")
	require.NoError(t, err)

	assert.NotEqual(t, h1.Hash("salt", "1234"), h2.Hash("salt", "1234"))
}

func TestNewHMACSHA256_EmptySecret(t *testing.T) {
	_, err := NewHMACSHA256("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
