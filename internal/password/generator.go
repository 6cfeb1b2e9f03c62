// Package password generates the credentials that protect created archives.
//
// Passwords are sampled from a fixed alphabet using crypto/rand and must
// contain at least one letter, one digit and one symbol. They exist only in
// memory and in the value returned to the caller; nothing in this package
// logs or persists them.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// DefaultLength is the length used when the caller does not choose one.
	DefaultLength = 16

	// MinLength is the smallest length that can satisfy the composition rule
	// (one character from each of the three classes).
	MinLength = 3

	// Symbols is the symbol class of the password alphabet.
	Symbols = "!@#$%^&*"

	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"

	alphabet = letters + digits + Symbols
)

// ErrLengthTooShort is returned when the requested length cannot satisfy the
// composition rule.
var ErrLengthTooShort = errors.New("password length too short")

// Generate returns a random password of the given length containing at least
// one letter, one digit and one symbol.
//
// It uses rejection sampling: draw length characters uniformly from the
// alphabet, retry until the composition rule holds. The alphabet mixes all
// three classes densely, so for any usable length the expected number of
// draws is small.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", fmt.Errorf("%w: need at least %d characters, got %d", ErrLengthTooShort, MinLength, length)
	}

	size := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)

	for {
		for i := range buf {
			idx, err := rand.Int(rand.Reader, size)
			if err != nil {
				return "", fmt.Errorf("reading random source: %w", err)
			}

			buf[i] = alphabet[idx.Int64()]
		}

		candidate := string(buf)
		if composed(candidate) {
			return candidate, nil
		}
	}
}

// composed reports whether s contains at least one character from each class.
func composed(s string) bool {
	var letter, digit, symbol bool

	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			letter = true
		case strings.ContainsRune(Symbols, c):
			symbol = true
		}
	}

	return letter && digit && symbol
}
