package envelope

import (
	"crypto/rand"
	"fmt"

	cerrors "agcrypt/internal/errors"
	"agcrypt/internal/kdf"
)

// PasswordMinLen is the length of a password envelope with an empty plaintext.
const PasswordMinLen = kdf.SaltLen + MinLen

// SealWithPassword encrypts plaintext for export. The password must pass
// kdf.ValidatePasswordStrength. Output is salt || envelope.
func SealWithPassword(plaintext, password []byte) ([]byte, error) {
	if err := kdf.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	salt := make([]byte, kdf.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: failed to generate salt: %w", cerrors.ErrEncryptionFailed, err)
	}

	key, err := kdf.DerivePasswordKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	sealed, err := Seal(plaintext, key, kdf.Latest)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(salt)+len(sealed))
	out = append(out, salt...)
	return append(out, sealed...), nil
}

// OpenWithPassword decrypts a password envelope of any version. Password
// strength is not checked.
func OpenWithPassword(data, password []byte) ([]byte, error) {
	if len(data) < PasswordMinLen {
		return nil, fmt.Errorf("%w: password envelope is %d bytes, need at least %d", cerrors.ErrInvalidData, len(data), PasswordMinLen)
	}
	if !IsEncryptedWithSalt(data) {
		return nil, fmt.Errorf("%w: unrecognised envelope tag", cerrors.ErrInvalidData)
	}

	key, err := kdf.DerivePasswordKey(password, data[:kdf.SaltLen])
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	return Open(data[kdf.SaltLen:], key)
}

// IsEncryptedWithSalt reports whether a version tag follows a salt prefix.
func IsEncryptedWithSalt(data []byte) bool {
	return len(data) >= kdf.SaltLen && IsEncrypted(data[kdf.SaltLen:])
}
