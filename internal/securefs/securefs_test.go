package securefs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "agcrypt/internal/errors"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.enc")

	require.NoError(t, WriteFile(path, []byte("AGCRYPT2...")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("AGCRYPT2..."), got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, FileMode, info.Mode().Perm())
	}
	assert.NoError(t, CheckPermissions(path))
}

func TestWriteFileTightensExistingFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX modes only")
	}
	path := filepath.Join(t.TempDir(), "backup.enc")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644)) // #nosec G306
	require.NoError(t, os.Chmod(path, 0o644))
	assert.ErrorIs(t, CheckPermissions(path), cerrors.ErrIO)

	require.NoError(t, WriteFile(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileMode, info.Mode().Perm())
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "backup.enc"), []byte("x"))
	assert.ErrorIs(t, err, cerrors.ErrIO)
}

func TestWriteFilePermissionFailureIsFatal(t *testing.T) {
	orig := restrictFile
	t.Cleanup(func() { restrictFile = orig })
	restrictFile = func(string) error { return errors.New("operation not permitted") }

	path := filepath.Join(t.TempDir(), "backup.enc")
	err := WriteFile(path, []byte("x"))
	assert.ErrorIs(t, err, cerrors.ErrIO)

	// The file stays so the caller can remove it.
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestCreateDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "backups")

	require.NoError(t, CreateDir(path))
	require.NoError(t, CreateDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, DirMode, info.Mode().Perm())
	}
}

func TestCreateDirPermissionFailureIsFatal(t *testing.T) {
	orig := restrictDir
	t.Cleanup(func() { restrictDir = orig })
	restrictDir = func(string) error { return errors.New("operation not permitted") }

	err := CreateDir(filepath.Join(t.TempDir(), "backups"))
	assert.ErrorIs(t, err, cerrors.ErrIO)
}

func TestCheckPermissionsMissingPath(t *testing.T) {
	err := CheckPermissions(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, cerrors.ErrIO)
}
