package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "envlens",
	Short:         "Locate, inspect, and safely edit .env files",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `EnvLens - find every .env file in a tree and edit it without wrecking it.

Edits are structural: comments, blank lines, and formatting of untouched
lines survive byte-for-byte. Duplicate keys are detected and reported, never
silently collapsed.

EXAMPLES:

  envlens scan ~/code
  envlens keys .env
  envlens set .env DATABASE_URL postgres://localhost/db
  envlens diff .env .env.production
  envlens watch .env
  envlens browse

Saves can keep a timestamped backup of the previous content: pass --backup,
or set backup.enabled in .envlens.yaml at the workspace root.`,
}

func init() {
	rootCmd.SetVersionTemplate("envlens version {{.Version}}\n")
}

// SetVersion sets the version string shown by --version (e.g. from ldflags).
func SetVersion(v string) { rootCmd.Version = v }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
