package cryptox

import (
	"encoding/hex"
	"errors"
	"strings"
)

const (
	// CardHashLength is the length of a hex encoded SHA-256 card digest.
	CardHashLength = 64
	// TokenPrefixLength is how many leading hex characters of a card hash are
	// handed out as the registration token.
	TokenPrefixLength = 8
)

var (
	ErrInvalidCardHash   = errors.New("cryptox: card hash must be 64 hex characters")
	ErrInvalidTokenShape = errors.New("cryptox: token must be 8 hex characters")
)

// NormalizeCardHash validates a hex SHA-256 digest and returns it lowercased.
func NormalizeCardHash(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != CardHashLength || !isHex(s) {
		return "", ErrInvalidCardHash
	}
	return s, nil
}

// NormalizeTokenPrefix validates a registration token and returns it lowercased.
func NormalizeTokenPrefix(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != TokenPrefixLength || !isHex(s) {
		return "", ErrInvalidTokenShape
	}
	return s, nil
}

// TokenPrefix returns the registration token for an already normalised card
// hash.
func TokenPrefix(cardHash string) string {
	if len(cardHash) < TokenPrefixLength {
		return cardHash
	}
	return cardHash[:TokenPrefixLength]
}

func isHex(s string) bool {
	// hex.DecodeString rejects odd lengths, both constants are even.
	_, err := hex.DecodeString(s)
	return err == nil
}
