package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is used for registered accounts. The seeded demo accounts carry hashes of the same cost.
const Cost = bcrypt.DefaultCost

var (
	ErrEmpty    = errors.New("password cannot be empty")
	ErrMismatch = errors.New("password does not match")
)

// Hash returns the bcrypt hash stored on the account instead of the password.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// Verify returns ErrMismatch for a wrong password. Any other error means the
// stored hash itself is unusable.
func Verify(plain, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}
