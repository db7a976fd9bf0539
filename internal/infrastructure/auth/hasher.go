package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned for every failed verification, whatever
// the underlying cause.
var ErrPasswordMismatch = errors.New("password verification failed")

// BcryptPasswordHasher hashes employee and customer passwords.
type BcryptPasswordHasher struct {
	cost int
	// dummy is compared against when no stored hash exists so that unknown
	// accounts cost as much time as wrong passwords.
	dummy []byte
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("repairshop-unknown-account"), cost)
	if err != nil {
		// Only possible for an out-of-range cost, which is clamped above.
		panic(fmt.Sprintf("bcrypt: %v", err))
	}
	return &BcryptPasswordHasher{cost: cost, dummy: dummy}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against hash. An empty hash always fails, after
// spending the same bcrypt work as a real comparison.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
