package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// CodeLength is the fixed width of generated login codes.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// NewCode draws a code uniformly from [000000, 999999], left-padded to
// six digits.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Match compares a submitted code against the stored one in constant time
// so the comparison leaks nothing about how many digits were right.
func Match(stored, submitted string) bool {
	if len(stored) != len(submitted) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
