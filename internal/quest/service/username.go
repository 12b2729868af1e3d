package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxUsernameLength = 32

// NormalizeUsername trims surrounding whitespace and validates what is left.
func NormalizeUsername(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxUsernameLength {
		return "", ErrInvalidUsername
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", ErrInvalidUsername
		}
	}
	return s, nil
}
