package webutil

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateHash creates a SHA-256 hash of the input string and returns it
// as a hexadecimal string. Used to fingerprint raw emails so re-delivered
// receipts can be detected at insert time.
func GenerateHash(data string) (string, error) {
	hasher := sha256.New()
	_, err := hasher.Write([]byte(data))
	if err != nil {
		return "", fmt.Errorf("failed to write data to hasher: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// GenerateRandomToken returns n random bytes hex-encoded (2n characters).
// Used for the local part of generated ingestion addresses.
func GenerateRandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
