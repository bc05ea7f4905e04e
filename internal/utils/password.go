package utils

import (
	"errors"
	"fmt"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of a plaintext password. Passwords longer
// than bcrypt accepts (72 bytes) fail with apperrors.ErrValidation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password is longer than 72 bytes", apperrors.ErrValidation)
	}
	return string(hash), err
}

// CheckPasswordHash reports whether password matches a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
