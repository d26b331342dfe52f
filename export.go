package main

import (
	"encoding/base64"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"agcrypt/internal/backup"
)

var exportBase64 bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Encrypt JSON from STDIN with a password to STDOUT",
	Long: `Encrypt JSON from STDIN with a password so it can be imported on any machine.

The password must be at least 12 characters long and contain a digit, a
lowercase letter, an uppercase letter and a symbol. Set AGCRYPT_PASSPHRASE
to avoid the prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(data)

		passphrase, err := getPassphraseWithConfirm("Enter passphrase: ", "Confirm passphrase: ")
		if err != nil {
			return fmt.Errorf("failed to get passphrase: %w", err)
		}
		defer memguard.WipeBytes(passphrase)

		var sealed []byte
		err = withSpinner("Deriving key...", func() error {
			sealed, err = crypter.Export(data, passphrase)
			return err
		})
		if err != nil {
			return err
		}

		if exportBase64 {
			encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sealed)), base64.StdEncoding.EncodedLen(len(sealed))+1)
			base64.StdEncoding.Encode(encoded, sealed)
			sealed = append(encoded, '\n')
		}
		return writeOutput(sealed)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Decrypt an export from STDIN to STDOUT",
	Long: `Decrypt an export from STDIN to STDOUT.

Binary and base64 password exports are accepted, as are plaintext JSON and
the XOR format written by old releases. The password is not checked for
strength, so old exports with weak passwords still import.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput()
		if err != nil {
			return err
		}

		format := backup.DetectFormat(data)
		log.Debugf("detected %s", format)

		var passphrase []byte
		switch format {
		case backup.FormatPlainJSON:
			log.Warnf("input is not encrypted; export it again to protect it")
		case backup.FormatPassword, backup.FormatPasswordBase64, backup.FormatLegacyXOR:
			if format == backup.FormatLegacyXOR {
				log.Warnf("input uses the legacy XOR format; export it again to use authenticated encryption")
			}
			passphrase, err = getPassphrase("Enter passphrase: ")
			if err != nil {
				return fmt.Errorf("failed to get passphrase: %w", err)
			}
			defer memguard.WipeBytes(passphrase)
		}

		var plaintext []byte
		err = withSpinner("Deriving key...", func() error {
			plaintext, err = crypter.Import(data, passphrase)
			return err
		})
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(plaintext)

		return writeOutput(plaintext)
	},
}

func init() {
	exportCmd.Flags().BoolVarP(&exportBase64, "base64", "b", false, "base64-encode the output (text-safe but 33% larger)")
}
