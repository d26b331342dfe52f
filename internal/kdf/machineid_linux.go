//go:build linux

package kdf

import (
	"fmt"
	"os"
	"strings"

	cerrors "agcrypt/internal/errors"
)

const machineIDPath = "/etc/machine-id"

// PlatformMachineID reads the systemd machine id. An empty file yields an
// empty id, not an error.
func PlatformMachineID() (string, error) {
	b, err := os.ReadFile(machineIDPath)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", cerrors.ErrMachineIDUnavailable, machineIDPath, err)
	}
	return strings.TrimSpace(string(b)), nil
}
