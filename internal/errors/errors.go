package errors

import "errors"

// Cryptographic errors.
var (
	// ErrEncryptionFailed indicates the AEAD primitive could not seal the data.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed covers tampering, a wrong key and corruption alike.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyDerivationFailed indicates a key could not be derived.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// ErrMachineIDUnavailable indicates the platform machine identity could not be read.
	ErrMachineIDUnavailable = errors.New("machine id unavailable")

	// ErrWeakPassword indicates a password failed the strength check on encryption.
	ErrWeakPassword = errors.New("password too weak")
)

// Data and storage errors.
var (
	// ErrInvalidData indicates malformed, truncated or unrecognised input.
	ErrInvalidData = errors.New("invalid data")

	// ErrIO indicates a write or permission failure.
	ErrIO = errors.New("io error")
)
