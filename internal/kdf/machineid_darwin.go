//go:build darwin

package kdf

import (
	"fmt"
	"os/exec"

	cerrors "agcrypt/internal/errors"
)

// PlatformMachineID returns the hardware IOPlatformUUID.
func PlatformMachineID() (string, error) {
	out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return "", fmt.Errorf("%w: running ioreg: %w", cerrors.ErrMachineIDUnavailable, err)
	}
	id, ok := parseIOPlatformUUID(string(out))
	if !ok {
		return "", fmt.Errorf("%w: IOPlatformUUID not found", cerrors.ErrMachineIDUnavailable)
	}
	return id, nil
}
