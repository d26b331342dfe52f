package backup

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"agcrypt/internal/envelope"
	cerrors "agcrypt/internal/errors"
)

// Format is the detected encoding of a backup or export file.
type Format int

const (
	FormatUnknown        Format = iota
	FormatMachine               // machine-bound envelope
	FormatPassword              // salt || envelope
	FormatPasswordBase64        // base64 of salt || envelope
	FormatPlainJSON             // unencrypted JSON object
	FormatLegacyXOR             // base64 of JSON XORed with the password
)

func (f Format) String() string {
	switch f {
	case FormatMachine:
		return "machine-bound envelope"
	case FormatPassword:
		return "password envelope"
	case FormatPasswordBase64:
		return "password envelope (base64)"
	case FormatPlainJSON:
		return "plaintext JSON"
	case FormatLegacyXOR:
		return "legacy XOR export"
	default:
		return "unknown"
	}
}

// DetectFormat classifies data without decrypting it.
func DetectFormat(data []byte) Format {
	switch {
	case len(data) == 0:
		return FormatUnknown
	case envelope.IsEncryptedWithSalt(data):
		return FormatPassword
	case envelope.IsEncrypted(data):
		return FormatMachine
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return FormatPlainJSON
	}
	decoded, err := decodeBase64(trimmed)
	if err != nil || len(decoded) == 0 {
		return FormatUnknown
	}
	if envelope.IsEncryptedWithSalt(decoded) {
		return FormatPasswordBase64
	}
	return FormatLegacyXOR
}

// Export validates that jsonData is JSON and seals it with password.
func (c *Crypter) Export(jsonData, password []byte) ([]byte, error) {
	if !json.Valid(jsonData) {
		return nil, fmt.Errorf("%w: export input is not valid JSON", cerrors.ErrInvalidData)
	}
	return c.EncryptForExport(jsonData, password)
}

// Import decodes an export in any supported format and returns its JSON.
// Machine-bound envelopes are rejected: they can only be restored on the
// machine that wrote them.
func (c *Crypter) Import(data, password []byte) ([]byte, error) {
	var (
		plaintext []byte
		err       error
	)

	switch format := DetectFormat(data); format {
	case FormatPassword:
		plaintext, err = c.DecryptForExport(data, password)
	case FormatPasswordBase64:
		raw, _ := decodeBase64(bytes.TrimSpace(data))
		plaintext, err = c.DecryptForExport(raw, password)
	case FormatPlainJSON:
		plaintext = data
	case FormatLegacyXOR:
		raw, _ := decodeBase64(bytes.TrimSpace(data))
		plaintext, err = xorWithPassword(raw, password)
	default:
		return nil, fmt.Errorf("%w: cannot import %s data", cerrors.ErrInvalidData, format)
	}
	if err != nil {
		return nil, err
	}

	if !json.Valid(plaintext) {
		return nil, fmt.Errorf("%w: imported data is not valid JSON, check the password", cerrors.ErrInvalidData)
	}
	return plaintext, nil
}

func decodeBase64(data []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(out, data)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

func xorWithPassword(data, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: legacy exports need a password", cerrors.ErrInvalidData)
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ password[i%len(password)]
	}
	return out, nil
}
