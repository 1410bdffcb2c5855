package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword is returned when asked to hash an empty string.
	ErrEmptyPassword = errors.New("auth: empty password")
	// ErrMismatchedHashAndPassword is returned when a password does not
	// match its stored hash.
	ErrMismatchedHashAndPassword = errors.New("auth: password does not match")
)

const bcryptCost = 10

// HashPassword generates a one-way hash of the given cleartext password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash validates that the given cleartext password
// matches the stored hash. The comparison is constant-time.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
