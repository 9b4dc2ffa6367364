package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libshelf/libshelf-be/internal/auth"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, auth.CheckPassword("correct horse battery staple", hash))
	assert.False(t, auth.CheckPassword("wrong password", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := auth.HashPassword("same input")
	require.NoError(t, err)
	second, err := auth.HashPassword("same input")
	require.NoError(t, err)

	// Different digests, both verify
	assert.NotEqual(t, first, second)
	assert.True(t, auth.CheckPassword("same input", first))
	assert.True(t, auth.CheckPassword("same input", second))
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	assert.False(t, auth.CheckPassword("anything", "not-a-bcrypt-digest"))
}
