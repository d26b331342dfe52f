// Package errors provides the typed error values returned by agcrypt.
//
// Every failure in the crypto core is reported as one of the sentinels below,
// usually wrapped with context:
//
//	return nil, fmt.Errorf("%w: reading /etc/machine-id: %w", errors.ErrMachineIDUnavailable, err)
//
// Callers branch with errors.Is:
//
//	if errors.Is(err, cerrors.ErrWeakPassword) {
//	    // ask for a stronger password
//	}
//
// ErrDecryptionFailed is always returned unwrapped so that a failed open
// does not reveal whether the key, the nonce or the tag was wrong.
package errors
