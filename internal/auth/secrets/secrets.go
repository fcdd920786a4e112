// Package secrets holds the credential primitives shared by client
// registration, client authentication and user management.
//
// Two hashing policies exist, chosen by credential class: bcrypt for
// values a human chose or could hold on to (user passwords, client
// secrets), and a plain SHA-256 digest for values that are already
// high-entropy random strings (authorization codes, refresh tokens),
// where a slow hash only adds latency without adding security.
package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// tokenBytes is the entropy of generated credentials: 32 bytes = 256 bits.
const tokenBytes = 32

// bcryptCost is 2^12 hashing rounds: high enough to resist offline brute
// force, low enough that registration stays responsive.
const bcryptCost = 12

// NewToken returns a cryptographically random string suitable for client
// secrets, authorization codes and refresh tokens. The value is
// base64url-encoded without padding.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashSecret hashes a client secret or user password with bcrypt.
// The raw value must never be stored; only the hash is persisted.
func HashSecret(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

// VerifySecret reports whether raw matches the stored bcrypt hash.
// bcrypt's comparison is constant-time with respect to the secret
// content; secrets must never be compared with == or bytes.Equal.
func VerifySecret(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// Digest returns the SHA-256 hash of a high-entropy credential as a
// lowercase hex string (64 characters).
func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
