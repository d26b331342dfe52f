package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/awnumar/memguard"

	"agcrypt/internal/envelope"
	cerrors "agcrypt/internal/errors"
	"agcrypt/internal/logging"
	"agcrypt/internal/securefs"
)

const (
	encryptedExt = ".enc"
	plaintextExt = ".json" // written by releases without encryption
)

// Store keeps one backup per name in Dir. New backups are always encrypted
// for the machine; plaintext backups from older releases are still read.
type Store struct {
	Dir     string
	Crypter *Crypter
	Log     logging.Logger
}

// Save encrypts plaintext and writes it as <name>.enc, replacing any previous
// backup of that name. It reports whether a backup already existed.
func (s *Store) Save(name string, plaintext []byte) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}
	if err := securefs.CreateDir(s.Dir); err != nil {
		return false, err
	}

	encPath, plainPath := s.paths(name)
	overwrite := exists(encPath) || exists(plainPath)

	sealed, err := s.Crypter.EncryptForMachine(plaintext)
	if err != nil {
		return false, fmt.Errorf("failed to encrypt backup %s: %w", name, err)
	}
	if err := securefs.WriteFile(encPath, sealed); err != nil {
		return false, err
	}

	if exists(plainPath) {
		if err := os.Remove(plainPath); err != nil {
			s.Log.Warnf("failed to remove plaintext backup %s: %v", plainPath, err)
		} else {
			s.Log.Infof("removed plaintext backup %s", plainPath)
		}
	}

	action := "created"
	if overwrite {
		action = "overwrote"
	}
	s.Log.Infof("%s encrypted backup %s", action, encPath)
	return overwrite, nil
}

// Load returns the plaintext of the named backup.
func (s *Store) Load(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", cerrors.ErrIO, path, err)
	}

	if !envelope.IsEncrypted(content) {
		if !json.Valid(content) {
			return nil, fmt.Errorf("%w: %s is neither encrypted nor JSON", cerrors.ErrInvalidData, path)
		}
		s.Log.Warnf("backup %s is stored in plaintext; save it again to encrypt it", name)
		return content, nil
	}

	s.Log.Debugf("decrypting backup %s", path)
	plaintext, err := s.Crypter.DecryptForMachine(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt backup %s: %w", name, err)
	}
	if !json.Valid(plaintext) {
		memguard.WipeBytes(plaintext)
		return nil, fmt.Errorf("%w: backup %s does not decrypt to JSON", cerrors.ErrInvalidData, name)
	}
	if NeedsUpgrade(content) {
		s.Log.Warnf("backup %s uses a legacy key derivation; save it again to upgrade", name)
	}
	return plaintext, nil
}

// Path returns the file holding the named backup, preferring the encrypted one.
func (s *Store) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	encPath, plainPath := s.paths(name)
	switch {
	case exists(encPath):
		return encPath, nil
	case exists(plainPath):
		return plainPath, nil
	default:
		return "", fmt.Errorf("%w: backup %q: %w", cerrors.ErrIO, name, fs.ErrNotExist)
	}
}

// List returns the sorted names of all backups in Dir.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", cerrors.ErrIO, s.Dir, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		var name string
		switch ext := filepath.Ext(e.Name()); ext {
		case encryptedExt, plaintextExt:
			name = strings.TrimSuffix(e.Name(), ext)
		default:
			continue
		}
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) paths(name string) (enc, plain string) {
	return filepath.Join(s.Dir, name+encryptedExt), filepath.Join(s.Dir, name+plaintextExt)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid backup name %q", cerrors.ErrInvalidData, name)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
