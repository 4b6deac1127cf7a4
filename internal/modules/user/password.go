package user

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
)

// HashPassword returns the bcrypt hash stored in place of the credential.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", apperr.ErrInvalidInput)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
