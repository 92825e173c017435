package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrHashFailed is returned when bcrypt cannot produce a digest (entropy
	// failure or an out-of-range cost). Callers must abort the operation.
	ErrHashFailed = errors.New("password hashing failed")

	// ErrPasswordTooLong mirrors bcrypt's 72 byte input limit.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
const MaxPasswordBytes = 72

// HashPassword returns bcrypt hash using the given cost. Every call embeds a
// fresh random salt, so two hashes of the same password differ.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
// Empty or malformed hashes report false instead of an error.  Inputs
// longer than MaxPasswordBytes never match: bcrypt would only compare their
// first 72 bytes.
func VerifyPassword(hash, plain string) bool {
	if hash == "" || plain == "" || len(plain) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
