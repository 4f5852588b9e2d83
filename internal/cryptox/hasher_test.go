package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	h := NewArgon2Hasher()

	encoded, err := h.Hash("pw12345678")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"), "unexpected encoding: %s", encoded)

	assert.True(t, h.Verify(encoded, "pw12345678"))
	assert.False(t, h.Verify(encoded, "pw12345679"))
	assert.False(t, h.Verify(encoded, ""))
}

func TestHash_UniqueSalt(t *testing.T) {
	h := NewArgon2Hasher()

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password must differ by salt")
	assert.True(t, h.Verify(a, "same-password"))
	assert.True(t, h.Verify(b, "same-password"))
}

func TestHash_EmptyPassword(t *testing.T) {
	h := NewArgon2Hasher()
	_, err := h.Hash("")
	require.Error(t, err)
}

func TestVerify_MalformedHash(t *testing.T) {
	h := NewArgon2Hasher()

	tests := []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	}
	for _, encoded := range tests {
		assert.False(t, h.Verify(encoded, "whatever"), "hash %q must not verify", encoded)
	}
}
