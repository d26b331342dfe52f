//go:build windows

package kdf

import (
	"fmt"

	"golang.org/x/sys/windows/registry"

	cerrors "agcrypt/internal/errors"
)

// PlatformMachineID returns the MachineGuid written at OS installation.
func PlatformMachineID() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Cryptography`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", fmt.Errorf("%w: opening Cryptography key: %w", cerrors.ErrMachineIDUnavailable, err)
	}
	defer k.Close()

	id, _, err := k.GetStringValue("MachineGuid")
	if err != nil {
		return "", fmt.Errorf("%w: reading MachineGuid: %w", cerrors.ErrMachineIDUnavailable, err)
	}
	return id, nil
}
