package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns n crypto-random bytes hex-encoded. This is what
// opaque session tokens are made of.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
