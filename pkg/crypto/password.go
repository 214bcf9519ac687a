package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently ignores (older versions) or rejects (newer versions) input
// beyond 72 bytes. Truncation is applied on the byte encoding, identically at
// hash time and verify time, so multi-byte characters truncate predictably.
const maxPasswordBytes = 72

const bcryptCost = 12

func preparePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(preparePassword(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// digest. A malformed digest yields false, never an error.
func VerifyPassword(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), preparePassword(password))
	return err == nil
}
