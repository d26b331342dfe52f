package kdf

import (
	"fmt"

	"github.com/awnumar/memguard"

	cerrors "agcrypt/internal/errors"
)

// KeyLen is the size of every derived key (AES-256).
const KeyLen = 32

// Key holds derived key material in locked, guarded memory.
type Key struct {
	buf *memguard.LockedBuffer
}

// NewKey moves raw into protected memory. raw is wiped whether or not the
// call succeeds.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeyLen {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: got %d key bytes, want %d", cerrors.ErrKeyDerivationFailed, len(raw), KeyLen)
	}
	return &Key{buf: memguard.NewBufferFromBytes(raw)}, nil
}

// Bytes returns the key material. The slice is only valid until Destroy.
func (k *Key) Bytes() []byte {
	if k == nil || k.buf == nil {
		return nil
	}
	return k.buf.Bytes()
}

// Destroy wipes the key. It is safe to call more than once.
func (k *Key) Destroy() {
	if k == nil || k.buf == nil {
		return
	}
	k.buf.Destroy()
}
