package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agcrypt/internal/backup"
	"agcrypt/internal/config"
	"agcrypt/internal/envelope"
	"agcrypt/internal/kdf"
	"agcrypt/internal/logging"
)

func useTestCrypter(t *testing.T) {
	t.Helper()
	fixed := func(v string) kdf.IdentityFunc {
		return func() (string, error) { return v, nil }
	}
	crypter = &backup.Crypter{Deriver: &kdf.Deriver{MachineID: fixed("test-machine"), Username: fixed("alice")}}
	cfg = &config.Config{Debug: true}
	log = logging.Logger{Out: &bytes.Buffer{}}
	store = &backup.Store{Dir: t.TempDir(), Crypter: crypter, Log: log}
}

func TestReadInput(t *testing.T) {
	orig := stdin
	t.Cleanup(func() { stdin = orig })

	stdin = strings.NewReader(`{"a":1}`)
	data, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	stdin = strings.NewReader("")
	_, err = readInput()
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	orig := stdout
	t.Cleanup(func() { stdout = orig })

	var buf bytes.Buffer
	stdout = &buf
	require.NoError(t, writeOutput([]byte("payload")))
	assert.Equal(t, "payload", buf.String())
}

func TestInspect(t *testing.T) {
	useTestCrypter(t)
	dir := t.TempDir()

	_, err := store.Save("current", []byte(`{}`))
	require.NoError(t, err)
	path, err := store.Path("current")
	require.NoError(t, err)

	report, err := inspect(path)
	require.NoError(t, err)
	assert.Equal(t, backup.FormatMachine.String(), report.Format)
	assert.Equal(t, "v2", report.Version)
	assert.False(t, report.NeedsUpgrade)
	assert.Equal(t, "ok", report.Permissions)

	sealed, err := crypter.Export([]byte(`{}`), []byte("Correct-Password-1!"))
	require.NoError(t, err)
	exportPath := filepath.Join(dir, "export.bin")
	require.NoError(t, os.WriteFile(exportPath, sealed, 0o600))

	report, err = inspect(exportPath)
	require.NoError(t, err)
	assert.Equal(t, backup.FormatPassword.String(), report.Format)
	assert.Equal(t, "v2", report.Version)

	plainPath := filepath.Join(dir, "plain.json")
	require.NoError(t, os.WriteFile(plainPath, []byte(`{"a":1}`), 0o600))
	require.NoError(t, os.Chmod(plainPath, 0o644))

	report, err = inspect(plainPath)
	require.NoError(t, err)
	assert.Equal(t, backup.FormatPlainJSON.String(), report.Format)
	assert.Empty(t, report.Version)
	assert.True(t, report.NeedsUpgrade)
	if runtime.GOOS != "windows" {
		assert.NotEqual(t, "ok", report.Permissions)
	}

	_, err = inspect(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestUpgradeBackupRewritesLegacyFile(t *testing.T) {
	useTestCrypter(t)

	key, err := crypter.Deriver.MachineKey(kdf.V1)
	require.NoError(t, err)
	defer key.Destroy()
	legacy, err := envelope.Seal([]byte(`{"old":true}`), key, kdf.V1)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "old.enc"), legacy, 0o600))

	plaintext, err := store.Load("old")
	require.NoError(t, err)
	require.NoError(t, upgradeBackup("old", plaintext))

	content, err := os.ReadFile(filepath.Join(store.Dir, "old.enc"))
	require.NoError(t, err)
	assert.False(t, backup.NeedsUpgrade(content))
	assert.Equal(t, backup.FormatMachine, backup.DetectFormat(content))

	got, err := store.Load("old")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"old":true}`), got)
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Cleanup(func() {
		backupDir, verbose, debug = "", false, false
	})

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&backupDir, "backup-dir", "", "")
	flags.BoolVarP(&verbose, "verbose", "v", false, "")
	flags.BoolVar(&debug, "debug", false, "")
	require.NoError(t, flags.Parse([]string{"--backup-dir", "/tmp/override", "-v"}))

	c := &config.Config{BackupDir: "/from/config", Verbose: false, Debug: true}
	applyFlagOverrides(flags, c)

	assert.Equal(t, "/tmp/override", c.BackupDir)
	assert.True(t, c.Verbose)
	assert.True(t, c.Debug, "unset flags must not override the config")
}

func TestExitStatus(t *testing.T) {
	orig := log
	t.Cleanup(func() { log = orig })

	var buf bytes.Buffer
	log = logging.Logger{Out: &buf}

	assert.Equal(t, 0, exitStatus(nil))
	assert.Empty(t, buf.String())

	assert.Equal(t, 1, exitStatus(errors.New("decryption failed")))
	assert.Contains(t, buf.String(), "[error] ")
	assert.Contains(t, buf.String(), "decryption failed")
}

func TestGetPassphraseFromEnvironment(t *testing.T) {
	t.Setenv(PassphraseEnvVar, "Correct-Password-1!")

	got, err := getPassphrase("Enter passphrase: ")
	require.NoError(t, err)
	assert.Equal(t, []byte("Correct-Password-1!"), got)

	got, err = getPassphraseWithConfirm("Enter passphrase: ", "Confirm passphrase: ")
	require.NoError(t, err)
	assert.Equal(t, []byte("Correct-Password-1!"), got)
}
