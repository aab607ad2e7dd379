package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash produces a salted bcrypt hash of the plaintext. Each call yields a
// different encoding for the same input, but any of them verifies against it.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored hash. bcrypt's compare is
// constant-time with respect to the input.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
