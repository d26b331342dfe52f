//go:build !windows

package securefs

import (
	"fmt"
	"os"

	cerrors "agcrypt/internal/errors"
)

func restrictFilePlatform(path string) error {
	return os.Chmod(path, FileMode)
}

func restrictDirPlatform(path string) error {
	return os.Chmod(path, DirMode)
}

func checkMode(path string, info os.FileInfo) error {
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		return fmt.Errorf("%w: %s has mode %04o, want owner-only access", cerrors.ErrIO, path, perm)
	}
	return nil
}
