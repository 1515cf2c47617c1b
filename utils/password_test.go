package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass", hash)

	ok, err := VerifyPassword(hash, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = VerifyPassword(hash, "wrong-pass")
	assert.False(t, ok)
}
