// Package envelope frames AEAD ciphertexts in self-describing byte envelopes.
//
// A machine-bound envelope is
//
//	[8-byte version tag][12-byte nonce][ciphertext][16-byte tag]
//
// and a password envelope prefixes it with a 16-byte random salt. The version
// tag tells the caller which key derivation produced the key; the codec
// itself only uses it to find the nonce.
package envelope

import (
	"bytes"
	"fmt"

	cerrors "agcrypt/internal/errors"
	"agcrypt/internal/kdf"
)

// MinLen is the length of a machine-bound envelope with an empty plaintext.
const MinLen = kdf.TagLen + NonceLen + AuthTagLen

// Envelope is a parsed view over sealed bytes. Its slices alias the input.
type Envelope struct {
	Version    kdf.Version
	Nonce      []byte
	Ciphertext []byte // includes the authentication tag
}

// Parse splits data into its fields without decrypting it.
func Parse(data []byte) (Envelope, error) {
	if len(data) < MinLen {
		return Envelope{}, fmt.Errorf("%w: envelope is %d bytes, need at least %d", cerrors.ErrInvalidData, len(data), MinLen)
	}
	v, ok := Sniff(data)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: unrecognised envelope tag", cerrors.ErrInvalidData)
	}
	body := data[kdf.TagLen:]
	return Envelope{
		Version:    v,
		Nonce:      body[:NonceLen],
		Ciphertext: body[NonceLen:],
	}, nil
}

// Sniff returns the version whose tag starts data.
func Sniff(data []byte) (kdf.Version, bool) {
	for _, v := range kdf.Versions() {
		if bytes.HasPrefix(data, v.Tag()) {
			return v, true
		}
	}
	return 0, false
}

// IsEncrypted reports whether data starts with a known version tag.
func IsEncrypted(data []byte) bool {
	_, ok := Sniff(data)
	return ok
}

// Seal encrypts plaintext under key with a fresh random nonce and frames it
// with the tag for v.
func Seal(plaintext []byte, key *kdf.Key, v kdf.Version) ([]byte, error) {
	tag := v.Tag()
	if tag == nil {
		return nil, fmt.Errorf("%w: unknown version %s", cerrors.ErrInvalidData, v)
	}

	primitive, err := newPrimitive(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cerrors.ErrEncryptionFailed, err)
	}
	ciphertext, err := primitive.Encrypt(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cerrors.ErrEncryptionFailed, err)
	}

	out := make([]byte, 0, len(tag)+len(ciphertext))
	out = append(out, tag...)
	return append(out, ciphertext...), nil
}

// Open authenticates and decrypts an envelope. Any authentication failure is
// reported as a bare ErrDecryptionFailed.
func Open(data []byte, key *kdf.Key) ([]byte, error) {
	env, err := Parse(data)
	if err != nil {
		return nil, err
	}

	primitive, err := newPrimitive(key.Bytes())
	if err != nil {
		return nil, cerrors.ErrDecryptionFailed
	}
	plaintext, err := primitive.Decrypt(data[len(env.Version.Tag()):], nil)
	if err != nil {
		return nil, cerrors.ErrDecryptionFailed
	}
	return plaintext, nil
}
