// Package logging provides levelled console logging for the agcrypt CLI.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always shown. All output goes to stderr because
// stdout carries plaintext or ciphertext.
//
//	log := logging.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("wrote backup %s", name)
package logging
