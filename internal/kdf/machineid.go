package kdf

import "strings"

// parseIOPlatformUUID extracts the IOPlatformUUID value from ioreg output:
//
//	"IOPlatformUUID" = "8A1B2C3D-..."
func parseIOPlatformUUID(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "IOPlatformUUID") {
			continue
		}
		fields := strings.Split(line, `"`)
		if len(fields) < 4 {
			return "", false
		}
		return fields[3], true
	}
	return "", false
}
