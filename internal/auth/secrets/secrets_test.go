package secrets

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	tok, err := NewToken()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotContains(t, tok, "=")

	other, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("correct-horse-battery-staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery-staple", hash)

	assert.True(t, VerifySecret("correct-horse-battery-staple", hash))
	assert.False(t, VerifySecret("correct-horse-battery-stapl3", hash))
	assert.False(t, VerifySecret("", hash))
}

func TestVerifySecret_SingleBitFlip(t *testing.T) {
	secret := "aGlnaC1lbnRyb3B5LXNlY3JldA"
	hash, err := HashSecret(secret)
	require.NoError(t, err)

	flipped := []byte(secret)
	flipped[0] ^= 0x01
	assert.True(t, VerifySecret(secret, hash))
	assert.False(t, VerifySecret(string(flipped), hash))
}

func TestDigest(t *testing.T) {
	d := Digest("some-authorization-code")
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), d)
	assert.Equal(t, d, Digest("some-authorization-code"))
	assert.NotEqual(t, d, Digest("some-authorization-codf"))
}
