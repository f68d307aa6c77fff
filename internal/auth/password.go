package auth

import (
	"golang.org/x/crypto/bcrypt"

	"sakay_backend/pkg/apperrors"
)

// HashPassword creates a salted bcrypt hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.ErrWeakPassword
	}
	return nil
}
