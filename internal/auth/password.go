// Package auth provides the credential hashing and token issuance shared by
// the customer, vendor, and admin login flows.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordTooShort is returned for passwords under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrPasswordTooLong is returned for passwords over 128 characters.
	ErrPasswordTooLong = errors.New("password must be less than 128 characters")
)

const bcryptCost = 10

// dummyDigest is a bcrypt digest of a random throwaway value. Login flows
// verify against it when no account matches the email, so the unknown-email
// and wrong-password paths do comparable work.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMye1VdLxHXAwzLKFG0kfP2byMeDokRW9PG"

// HashPassword returns the bcrypt digest of a plaintext password.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// CheckDummy burns a bcrypt comparison without ever succeeding.
func CheckDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(password))
}

// ValidatePassword enforces the password length rules.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 128 {
		return ErrPasswordTooLong
	}
	return nil
}

// IsPasswordPolicyError reports whether err is a password length violation.
func IsPasswordPolicyError(err error) bool {
	return errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrPasswordTooLong)
}
