// Package config loads the agcrypt settings file.
//
// The file is TOML and lives at <user config dir>/agcrypt/config.toml:
//
//	backup_dir = "/home/alice/.config/agcrypt/backups"
//	verbose = true
//
// A missing file is not an error; defaults apply. Command-line flags
// override whatever the file says.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	cerrors "agcrypt/internal/errors"
	"agcrypt/internal/securefs"
)

const appName = "agcrypt"

type Config struct {
	BackupDir string `toml:"backup_dir"`
	Verbose   bool   `toml:"verbose"`
	Debug     bool   `toml:"debug"`
}

// DefaultPath returns the settings file location for the current user.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Default returns the settings used when no file exists.
func Default() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return &Config{BackupDir: filepath.Join(dir, appName, "backups")}, nil
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: parsing %s: %w", cerrors.ErrInvalidData, path, err)
	}
	return cfg, nil
}

// Save writes c to path with owner-only permissions.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := securefs.CreateDir(filepath.Dir(path)); err != nil {
		return err
	}
	return securefs.WriteFile(path, buf.Bytes())
}
