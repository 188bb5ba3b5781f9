package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	// SecretSize is the byte length of generated HS256 secrets and peppers.
	// Encoded it is 43 characters, above the codec's 32 character minimum.
	SecretSize = 32

	// minSecretSize is 128 bits.
	minSecretSize = 16
)

// RandomSecret returns size random bytes as unpadded base64url.
func RandomSecret(size int) (string, error) {
	if size < minSecretSize {
		return "", fmt.Errorf("cryptox: secret size %d is below %d bytes", size, minSecretSize)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewSigningSecret returns a value suitable for JWT_SECRET.
func NewSigningSecret() (string, error) {
	return RandomSecret(SecretSize)
}
