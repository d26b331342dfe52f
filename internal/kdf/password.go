package kdf

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"

	cerrors "agcrypt/internal/errors"
)

const (
	// SaltLen is the size of the random salt for password keys.
	SaltLen = 16

	// MinPasswordLen is the minimum number of characters for new passwords.
	MinPasswordLen = 12
)

// DerivePasswordKey derives a portable key from password and salt. It does
// not check password strength, so weak passwords from old exports still work.
func DerivePasswordKey(password, salt []byte) (*Key, error) {
	if len(salt) != SaltLen {
		return nil, fmt.Errorf("%w: salt is %d bytes, want %d", cerrors.ErrKeyDerivationFailed, len(salt), SaltLen)
	}
	return NewKey(argon2.IDKey(password, salt, Argon2Time, Argon2Memory, Argon2Threads, KeyLen))
}

// ValidatePasswordStrength rejects passwords shorter than MinPasswordLen
// characters or lacking a digit, a lowercase letter, an uppercase letter or
// a symbol.
func ValidatePasswordStrength(password []byte) error {
	if utf8.RuneCount(password) < MinPasswordLen {
		return fmt.Errorf("%w: must be at least %d characters", cerrors.ErrWeakPassword, MinPasswordLen)
	}

	var digit, lower, upper, symbol bool
	for b := password; len(b) > 0; {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		default:
			symbol = true
		}
	}

	if !digit || !lower || !upper || !symbol {
		return fmt.Errorf("%w: must contain a digit, a lowercase letter, an uppercase letter and a symbol", cerrors.ErrWeakPassword)
	}
	return nil
}
