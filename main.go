package main

import (
	"os"
	"time"

	"github.com/awnumar/memguard"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"agcrypt/internal/backup"
	"agcrypt/internal/config"
	"agcrypt/internal/logging"
)

const Version = "2.0.0"

var (
	configPath string
	backupDir  string
	verbose    bool
	debug      bool

	cfg     *config.Config
	log     logging.Logger
	crypter *backup.Crypter
	store   *backup.Store
)

var rootCmd = &cobra.Command{
	Use:   "agcrypt",
	Short: "agcrypt - encrypted local backups and password-protected exports",
	Long: `agcrypt encrypts application data at rest.

Backups are encrypted with a key derived from this machine's identity and
your OS account, so no password is needed but they can only be restored
here. Exports are encrypted with a password and can be imported anywhere.

Backups written by older releases (SHA-256 key derivation, or plaintext
JSON) are still readable; use 'restore --upgrade' to rewrite them with
Argon2id.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default <user config dir>/agcrypt/config.toml)")
	flags.StringVar(&backupDir, "backup-dir", "", "directory holding machine-bound backups")
	flags.BoolVarP(&verbose, "verbose", "v", false, "show info messages")
	flags.BoolVar(&debug, "debug", false, "show debug messages")

	rootCmd.AddCommand(backupCmd, restoreCmd, listCmd, exportCmd, importCmd, inspectCmd, configCmd)
}

func setup(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	configPath = path

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	applyFlagOverrides(cmd.Flags(), cfg)

	log = logging.Logger{Verbose: cfg.Verbose, Debug: cfg.Debug}
	log.Debugf("config %s, backup dir %s", path, cfg.BackupDir)

	crypter = backup.NewCrypter()
	store = &backup.Store{Dir: cfg.BackupDir, Crypter: crypter, Log: log}
	return nil
}

// applyFlagOverrides copies explicitly set global flags over the loaded config.
func applyFlagOverrides(flags *pflag.FlagSet, c *config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "backup-dir":
			c.BackupDir = backupDir
		case "verbose":
			c.Verbose = verbose
		case "debug":
			c.Debug = debug
		}
	})
}

// withSpinner runs fn, which is expected to spend a while in Argon2, behind a
// spinner on stderr when stderr is a terminal.
func withSpinner(msg string, fn func() error) error {
	if cfg.Debug || !term.IsTerminal(int(os.Stderr.Fd())) {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()
	return fn()
}

func main() {
	memguard.CatchInterrupt()
	err := rootCmd.Execute()
	memguard.Purge()
	os.Exit(exitStatus(err))
}

// exitStatus reports err on stderr and returns the process exit code.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	log.Errorf("%v", err)
	return 1
}
