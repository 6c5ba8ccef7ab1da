package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// The symbol set accepted by the sign-up password policy. Kept as an explicit
// list rather than unicode.IsPunct so the accepted characters match the
// sign-up form exactly.
const passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

var (
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
	ErrPasswordNeedsUppercase = errors.New("password must contain at least 1 uppercase letter")
	ErrPasswordNeedsDigits    = errors.New("password must contain at least 2 numeric characters")
	ErrPasswordNeedsSymbol    = errors.New("password must contain at least 1 special character")
)

// ValidatePassword enforces the sign-up password policy: minimum 8
// characters, at least 1 uppercase letter, at least 2 digits and at least 1
// symbol. Returns nil when the password is acceptable.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var upper, digits, symbols int
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune(passwordSymbols, r):
			symbols++
		}
	}

	if upper < 1 {
		return ErrPasswordNeedsUppercase
	}
	if digits < 2 {
		return ErrPasswordNeedsDigits
	}
	if symbols < 1 {
		return ErrPasswordNeedsSymbol
	}
	return nil
}

// HashPassword returns a bcrypt hash for the provided plaintext.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash. Returns
// nil iff they match.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
