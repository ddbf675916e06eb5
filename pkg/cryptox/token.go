package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// keyIDEntropy is the random part of a signing key id, in bytes.
const keyIDEntropy = 16

// RandomString returns n bytes from crypto/rand as unpadded base64url.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: random length must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewKeyID returns a JWKS key id of the form "<prefix>-<22 base64url chars>".
func NewKeyID(prefix string) (string, error) {
	suffix, err := RandomString(keyIDEntropy)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return suffix, nil
	}
	return prefix + "-" + suffix, nil
}
