package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("ProducesPHCEncoding", func(t *testing.T) {
		hash, err := HashPassword("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
		assert.Len(t, strings.Split(hash, "$"), 6)
	})

	t.Run("SamePasswordDifferentEncodings", func(t *testing.T) {
		hash1, err := HashPassword("samepassword")
		require.NoError(t, err)
		hash2, err := HashPassword("samepassword")
		require.NoError(t, err)

		// Fresh salt per call, yet both must verify.
		assert.NotEqual(t, hash1, hash2)

		ok, err := VerifyPassword("samepassword", hash1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyPassword("samepassword", hash2)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RejectsEmptyPassword", func(t *testing.T) {
		_, err := HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)

		ok, err := VerifyPassword("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		hash, err := HashPassword("password-one")
		require.NoError(t, err)

		ok, err := VerifyPassword("password-two", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MalformedHashFailsClosed", func(t *testing.T) {
		for _, malformed := range []string{
			"",
			"not-a-valid-hash",
			"$argon2id$v=19$m=65536,t=1,p=4$onlyfourparts",
			"$argon2id$v=19$m=65536,t=1,p=4$!!!badsalt!!!$aGFzaA",
			"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!badkey!!!",
			"$argon2id$vXX$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			"$argon2id$v=19$mXX$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=16,t=1,p=4$c2FsdA$aGFzaA",
		} {
			ok, err := VerifyPassword("password", malformed)
			assert.Error(t, err, "hash %q", malformed)
			assert.False(t, ok, "hash %q", malformed)
		}
	})

	t.Run("UnsupportedAlgorithm", func(t *testing.T) {
		ok, err := VerifyPassword("password", "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported hash algorithm")
		assert.False(t, ok)
	})
}
