// Package shared provides small helpers used by several transports.
package shared

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them, so the final string is twice as long.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// RequestID returns a 16-character identifier for correlating log lines of
// one request. It falls back to "unknown" if randomness is unavailable.
func RequestID() string {
	s, err := MakeRandHexString(8)
	if err != nil {
		return "unknown"
	}
	return s
}
