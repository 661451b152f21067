package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// KeyPrefix marks every key issued by this service.
const KeyPrefix = "ak_live_"

const keyEntropyBytes = 32

// GenerateKey returns a new raw API key.
func GenerateKey() (string, error) {
	buf := make([]byte, keyEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return KeyPrefix + hex.EncodeToString(buf), nil
}

// HashKey is the at-rest form of a raw key.
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Preview masks a raw key for display, keeping enough of it to recognize.
func Preview(raw string) string {
	if len(raw) < 12 {
		return raw
	}
	return raw[:8] + "..." + raw[len(raw)-4:]
}
