// Package backup is the entry point callers use to protect application data.
//
// Crypter encrypts new data with the newest machine-bound algorithm and
// decrypts envelopes of every supported version by reading their tag.
// Decryption never writes anything back; re-saving old data in the newest
// format is left to the caller (see NeedsUpgrade).
//
// Store keeps one encrypted backup per name in a directory, and Export/Import
// handle the portable password-protected format.
package backup

import (
	"agcrypt/internal/envelope"
	"agcrypt/internal/kdf"
)

// Crypter is safe for concurrent use: every call derives its own key.
type Crypter struct {
	Deriver *kdf.Deriver
}

func NewCrypter() *Crypter {
	return &Crypter{Deriver: kdf.NewDeriver()}
}

// EncryptForMachine seals plaintext to this machine and OS account using
// kdf.Latest.
func (c *Crypter) EncryptForMachine(plaintext []byte) ([]byte, error) {
	key, err := c.Deriver.MachineKey(kdf.Latest)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	return envelope.Seal(plaintext, key, kdf.Latest)
}

// DecryptForMachine opens a machine-bound envelope of any known version.
func (c *Crypter) DecryptForMachine(data []byte) ([]byte, error) {
	env, err := envelope.Parse(data)
	if err != nil {
		return nil, err
	}

	key, err := c.Deriver.MachineKey(env.Version)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	return envelope.Open(data, key)
}

// EncryptForExport seals plaintext with a password for use on any machine.
func (c *Crypter) EncryptForExport(plaintext, password []byte) ([]byte, error) {
	return envelope.SealWithPassword(plaintext, password)
}

// DecryptForExport opens a password envelope of any known version.
func (c *Crypter) DecryptForExport(data, password []byte) ([]byte, error) {
	return envelope.OpenWithPassword(data, password)
}

// NeedsUpgrade reports whether data is a machine-bound envelope sealed with
// an algorithm older than kdf.Latest.
func NeedsUpgrade(data []byte) bool {
	v, ok := envelope.Sniff(data)
	return ok && v < kdf.Latest
}
