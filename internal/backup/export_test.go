package backup

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "agcrypt/internal/errors"
)

func legacyXORExport(plaintext, password string) []byte {
	out := make([]byte, len(plaintext))
	for i := range plaintext {
		out[i] = plaintext[i] ^ password[i%len(password)]
	}
	return []byte(base64.StdEncoding.EncodeToString(out))
}

func TestExportImportRoundTrip(t *testing.T) {
	c := testCrypter("machine-a")
	data := []byte(`{"accounts":[{"email":"user@example.com"}]}`)

	sealed, err := c.Export(data, []byte(strongPassword))
	require.NoError(t, err)
	assert.Equal(t, FormatPassword, DetectFormat(sealed))

	got, err := testCrypter("machine-b").Import(sealed, []byte(strongPassword))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	encoded := []byte(base64.StdEncoding.EncodeToString(sealed) + "\n")
	assert.Equal(t, FormatPasswordBase64, DetectFormat(encoded))
	got, err = c.Import(encoded, []byte(strongPassword))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestExportRejectsInvalidInput(t *testing.T) {
	c := testCrypter("machine-a")

	_, err := c.Export([]byte("not json"), []byte(strongPassword))
	assert.ErrorIs(t, err, cerrors.ErrInvalidData)

	_, err = c.Export([]byte(`{}`), []byte("123456"))
	assert.ErrorIs(t, err, cerrors.ErrWeakPassword)
}

func TestImportPlainJSON(t *testing.T) {
	got, err := testCrypter("machine-a").Import([]byte("  {\"a\":1}\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("  {\"a\":1}\n"), got)
}

func TestImportLegacyXOR(t *testing.T) {
	c := testCrypter("machine-a")
	data := legacyXORExport(`{"theme":"dark"}`, "weak")
	assert.Equal(t, FormatLegacyXOR, DetectFormat(data))

	got, err := c.Import(data, []byte("weak"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"theme":"dark"}`), got)

	_, err = c.Import(data, []byte("wrong-password"))
	assert.ErrorIs(t, err, cerrors.ErrInvalidData)

	_, err = c.Import(data, nil)
	assert.ErrorIs(t, err, cerrors.ErrInvalidData)
}

func TestImportRejects(t *testing.T) {
	c := testCrypter("machine-a")

	machine, err := c.EncryptForMachine([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, FormatMachine, DetectFormat(machine))

	for name, data := range map[string][]byte{
		"empty":   nil,
		"machine": machine,
		"binary":  {0xff, 0x00, 0x13},
	} {
		_, err := c.Import(data, []byte(strongPassword))
		assert.ErrorIs(t, err, cerrors.ErrInvalidData, name)
	}

	sealed, err := c.Export([]byte(`{}`), []byte(strongPassword))
	require.NoError(t, err)
	_, err = c.Import(sealed, []byte("Wrong-Password-1!"))
	assert.Equal(t, cerrors.ErrDecryptionFailed, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		data []byte
		want Format
	}{
		{nil, FormatUnknown},
		{[]byte("AGCRYPT2" + "0123456789abcdef0123456789"), FormatMachine},
		{append(make([]byte, 16), []byte("AGCRYPT1rest")...), FormatPassword},
		{[]byte(`{"key":"value"}`), FormatPlainJSON},
		{[]byte("not base64!"), FormatUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.data), tt.want.String())
	}
}
