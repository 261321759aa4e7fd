package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/echojournal/internal/common"
)

// HashAgentKey returns the bcrypt hash stored in the server config for an
// agent key.
func HashAgentKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("agent key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAgentKey checks key against hash.
func VerifyAgentKey(hash, key string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}
