package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not runes.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// CheckPasswordLength reports whether plaintext can be hashed.
func CheckPasswordLength(plaintext string) error {
	switch {
	case plaintext == "":
		return ErrEmptyPassword
	case len(plaintext) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// PasswordHasher produces salted bcrypt digests. The zero value uses
// bcrypt.DefaultCost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, clamped to bcrypt's
// accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a fresh salted digest of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if err := CheckPasswordLength(plaintext); err != nil {
		return "", err
	}
	cost := h.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest
// yields false.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
