//go:build !linux && !darwin && !windows

package kdf

import (
	"fmt"
	"runtime"

	cerrors "agcrypt/internal/errors"
)

func PlatformMachineID() (string, error) {
	return "", fmt.Errorf("%w: unsupported platform %s", cerrors.ErrMachineIDUnavailable, runtime.GOOS)
}
