// Package securefs writes files and directories readable only by their owner.
//
// Permissions are tightened after the write. If that step fails the call
// fails with errors.ErrIO and the file is left in place, so the caller can
// decide whether to delete it.
package securefs

import (
	"fmt"
	"os"

	cerrors "agcrypt/internal/errors"
)

const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o700
)

// Overridden in tests.
var (
	restrictFile = restrictFilePlatform
	restrictDir  = restrictDirPlatform
)

// WriteFile writes data to path and restricts it to owner read/write.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, FileMode); err != nil {
		return fmt.Errorf("%w: writing %s: %w", cerrors.ErrIO, path, err)
	}
	if err := restrictFile(path); err != nil {
		return fmt.Errorf("%w: restricting permissions on %s: %w", cerrors.ErrIO, path, err)
	}
	return nil
}

// CreateDir creates path and any parents, then restricts path to its owner.
func CreateDir(path string) error {
	if err := os.MkdirAll(path, DirMode); err != nil {
		return fmt.Errorf("%w: creating %s: %w", cerrors.ErrIO, path, err)
	}
	if err := restrictDir(path); err != nil {
		return fmt.Errorf("%w: restricting permissions on %s: %w", cerrors.ErrIO, path, err)
	}
	return nil
}

// CheckPermissions reports an ErrIO if path is accessible to anyone but
// its owner. It is a no-op where POSIX modes do not apply.
func CheckPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cerrors.ErrIO, err)
	}
	return checkMode(path, info)
}
