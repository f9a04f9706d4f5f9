package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinPasswordLength is the shortest password GenerateSecurePassword returns.
const MinPasswordLength = 12

// GenerateSecurePassword creates a random URL-safe password of the given
// length, raised to MinPasswordLength when shorter.
func GenerateSecurePassword(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	// base64 yields 4 characters per 3 bytes
	b := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	password := base64.RawURLEncoding.EncodeToString(b)
	return password[:length], nil
}
