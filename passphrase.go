package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"golang.org/x/term"
)

// PassphraseEnvVar supplies the passphrase non-interactively.
const PassphraseEnvVar = "AGCRYPT_PASSPHRASE"

var errNoTerminal = fmt.Errorf("no terminal to prompt on; set %s", PassphraseEnvVar)

func getPassphrase(prompt string) ([]byte, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}
	return readPassword(prompt)
}

func getPassphraseWithConfirm(prompt, confirmPrompt string) ([]byte, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}

	passphrase, err := readPassword(prompt)
	if err != nil {
		return nil, err
	}

	confirm, err := readPassword(confirmPrompt)
	if err != nil {
		memguard.WipeBytes(passphrase)
		return nil, err
	}
	defer memguard.WipeBytes(confirm)

	if !bytes.Equal(passphrase, confirm) {
		memguard.WipeBytes(passphrase)
		return nil, errors.New("passphrases do not match")
	}
	return passphrase, nil
}

// promptTerminal returns a terminal to read a passphrase from. export and
// import read their payload from STDIN, so STDIN is only used when nothing
// is piped into it; otherwise the controlling terminal is opened.
func promptTerminal() (*os.File, func(), error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stdin, func() {}, nil
	}
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, nil, errNoTerminal
	}
	if !term.IsTerminal(int(tty.Fd())) {
		tty.Close()
		return nil, nil, errNoTerminal
	}
	return tty, func() { tty.Close() }, nil
}

func readPassword(prompt string) ([]byte, error) {
	tty, done, err := promptTerminal()
	if err != nil {
		return nil, err
	}
	defer done()

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}
