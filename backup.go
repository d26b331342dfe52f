package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"agcrypt/internal/backup"
)

var restoreUpgrade bool

var backupCmd = &cobra.Command{
	Use:   "backup <name>",
	Short: "Encrypt STDIN to this machine and store it as a named backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		data, err := readInput()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(data)

		var overwrite bool
		err = withSpinner("Encrypting backup...", func() error {
			overwrite, err = store.Save(name, data)
			return err
		})
		if err != nil {
			return err
		}

		action := "Created"
		if overwrite {
			action = "Overwrote"
		}
		fmt.Fprintf(os.Stderr, "%s backup %s\n", action, name)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Decrypt a named backup to STDOUT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var plaintext []byte
		err := withSpinner("Decrypting backup...", func() error {
			var err error
			plaintext, err = store.Load(name)
			return err
		})
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(plaintext)

		if restoreUpgrade {
			if err := upgradeBackup(name, plaintext); err != nil {
				return err
			}
		}
		return writeOutput(plaintext)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored backups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			log.Infof("no backups in %s", store.Dir)
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreUpgrade, "upgrade", false, "re-encrypt legacy or plaintext backups with the current algorithm")
}

// upgradeBackup re-saves a backup that is plaintext or uses an old key
// derivation. Decryption alone never rewrites anything.
func upgradeBackup(name string, plaintext []byte) error {
	path, err := store.Path(name)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if backup.DetectFormat(content) == backup.FormatMachine && !backup.NeedsUpgrade(content) {
		log.Infof("backup %s already uses the current format", name)
		return nil
	}

	return withSpinner("Upgrading backup...", func() error {
		if _, err := store.Save(name, plaintext); err != nil {
			return fmt.Errorf("failed to upgrade backup %s: %w", name, err)
		}
		fmt.Fprintf(os.Stderr, "Upgraded backup %s\n", name)
		return nil
	})
}
