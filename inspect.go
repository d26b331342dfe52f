package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agcrypt/internal/backup"
	"agcrypt/internal/envelope"
	"agcrypt/internal/kdf"
	"agcrypt/internal/securefs"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the format of a backup or export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := inspect(args[0])
		if err != nil {
			return err
		}

		if inspectJSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Fprintf(stdout, "path:          %s\n", report.Path)
		fmt.Fprintf(stdout, "size:          %d bytes\n", report.Size)
		fmt.Fprintf(stdout, "format:        %s\n", report.Format)
		if report.Version != "" {
			fmt.Fprintf(stdout, "version:       %s\n", report.Version)
		}
		fmt.Fprintf(stdout, "needs upgrade: %t\n", report.NeedsUpgrade)
		fmt.Fprintf(stdout, "permissions:   %s\n", report.Permissions)
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the report as JSON")
}

func inspect(path string) (InspectReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return InspectReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := backup.DetectFormat(content)
	report := InspectReport{
		Path:        path,
		Size:        len(content),
		Format:      format.String(),
		Permissions: "ok",
	}

	var tagged []byte
	switch format {
	case backup.FormatMachine:
		tagged = content
		report.NeedsUpgrade = backup.NeedsUpgrade(content)
	case backup.FormatPassword:
		tagged = content[kdf.SaltLen:]
	case backup.FormatPlainJSON, backup.FormatLegacyXOR:
		report.NeedsUpgrade = true
	}
	if v, ok := envelope.Sniff(tagged); ok {
		report.Version = v.String()
	}

	if err := securefs.CheckPermissions(path); err != nil {
		report.Permissions = err.Error()
	}
	return report, nil
}
