package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for new password hashes.
const bcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt.
// The salt and cost are embedded in the returned string.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		// bcrypt silently truncates longer inputs; reject explicitly.
		return "", fmt.Errorf("password must be 72 bytes or fewer")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored hash.
// The comparison is constant-time.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
