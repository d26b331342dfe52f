package kdf

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os/user"
	"runtime"
	"strings"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"

	cerrors "agcrypt/internal/errors"
)

const (
	appSaltV1 = "antigravity-agent-v1"
	appSaltV2 = "antigravity-agent-v2-argon2"

	// Argon2id parameters shared by the V2 machine key and password keys.
	Argon2Time    = 2
	Argon2Memory  = 19 * 1024 // KiB
	Argon2Threads = 1
)

// IdentityFunc returns one component of the machine identity.
type IdentityFunc func() (string, error)

// Deriver derives machine-bound keys. The identity sources are fields so that
// tests can pin them; a zero Deriver fails every machine derivation.
type Deriver struct {
	MachineID IdentityFunc
	Username  IdentityFunc
}

// NewDeriver returns a Deriver reading the real platform identity.
func NewDeriver() *Deriver {
	return &Deriver{
		MachineID: PlatformMachineID,
		Username:  CurrentUsername,
	}
}

// MachineKey derives the machine key for version v.
func (d *Deriver) MachineKey(v Version) (*Key, error) {
	switch v {
	case V1:
		return d.machineKeyV1()
	case V2:
		return d.machineKeyV2()
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %s", cerrors.ErrKeyDerivationFailed, v)
	}
}

// machineKeyV1 reproduces the legacy derivation bit for bit, including the
// placeholder identity used when the platform lookup failed. An empty id that
// was read successfully is used as is.
func (d *Deriver) machineKeyV1() (*Key, error) {
	machineID, err := d.machineID()
	if err != nil {
		machineID = legacyPlaceholderID(runtime.GOOS)
	}
	username, err := d.username()
	if err != nil {
		return nil, err
	}

	material := join(machineID, ":", username, ":", appSaltV1)
	defer memguard.WipeBytes(material)

	sum := sha256.Sum256(material)
	return NewKey(sum[:])
}

func (d *Deriver) machineKeyV2() (*Key, error) {
	machineID, err := d.machineID()
	if err != nil {
		return nil, err
	}
	if machineID == "" {
		return nil, fmt.Errorf("%w: empty machine id", cerrors.ErrMachineIDUnavailable)
	}
	username, err := d.username()
	if err != nil {
		return nil, err
	}

	material := join(machineID, ":", username)
	defer memguard.WipeBytes(material)
	salt := join(appSaltV2, ":", machineID)
	defer memguard.WipeBytes(salt)

	return NewKey(argon2.IDKey(material, salt, Argon2Time, Argon2Memory, Argon2Threads, KeyLen))
}

func (d *Deriver) machineID() (string, error) {
	if d == nil || d.MachineID == nil {
		return "", fmt.Errorf("%w: no machine id provider", cerrors.ErrMachineIDUnavailable)
	}
	id, err := d.MachineID()
	if err != nil {
		if errors.Is(err, cerrors.ErrMachineIDUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", cerrors.ErrMachineIDUnavailable, err)
	}
	return id, nil
}

func (d *Deriver) username() (string, error) {
	if d == nil || d.Username == nil {
		return "", fmt.Errorf("%w: no username provider", cerrors.ErrKeyDerivationFailed)
	}
	name, err := d.Username()
	if err != nil {
		return "", fmt.Errorf("%w: looking up username: %w", cerrors.ErrKeyDerivationFailed, err)
	}
	return name, nil
}

// CurrentUsername returns the OS account name without any domain prefix.
func CurrentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	name := u.Username
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name, nil
}

func legacyPlaceholderID(goos string) string {
	switch goos {
	case "darwin":
		return "default-mac-id"
	case "windows":
		return "default-win-id"
	case "linux":
		return "default-linux-id"
	default:
		return "default-unknown-id"
	}
}

func join(parts ...string) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	b := make([]byte, 0, n)
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}
