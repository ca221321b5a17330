package service

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) (bool, error)
}

type BcryptHasher struct {
	cost int
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(hash), nil
}

// Verify implements PasswordHasher.
func (h *BcryptHasher) Verify(hash string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

var _ PasswordHasher = &BcryptHasher{}
