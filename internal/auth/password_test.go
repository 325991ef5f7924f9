package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap params keep the suite fast; production defaults are exercised once below.
var testHashParams = HashParams{Memory: 8 * 1024, Iterations: 1, Parallelism: 1}

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(testHashParams)

	for _, pw := range []string{"secret123", "", "ünïcødé pässwörd", strings.Repeat("x", 1024)} {
		encoded, err := h.Hash(pw)
		require.NoError(t, err)

		ok, err := h.Verify(pw, encoded)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", pw)
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := NewHasher(testHashParams)

	encoded, err := h.Hash("correct-password")
	require.NoError(t, err)

	ok, err := h.Verify("wrong-password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher(testHashParams)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, encoded := range []string{first, second} {
		ok, err := h.Verify("same-password", encoded)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHasher_PHCFormat(t *testing.T) {
	encoded, err := NewHasher(HashParams{}).Hash("test")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Equal(t, "m=65536,t=3,p=2", parts[3])
}

func TestHasher_VerifyUsesStoredParams(t *testing.T) {
	encoded, err := NewHasher(testHashParams).Hash("pw")
	require.NoError(t, err)

	// a hasher configured differently still verifies older hashes
	ok, err := NewHasher(HashParams{Memory: 16 * 1024, Iterations: 2, Parallelism: 1}).Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(testHashParams)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not PHC", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA"},
		{"too few parts", "$argon2id$v=19$m=65536,t=3,p=1"},
		{"bad version", "$argon2id$v=16$m=65536,t=3,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=1$c2FsdA$aGFzaA"},
		{"zero params", "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
		{"bad digest", "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("password", tt.hash)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCrypto))
			assert.False(t, ok)
		})
	}
}
