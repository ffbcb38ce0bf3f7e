package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommand(t *testing.T) {
	t.Run("root command has correct metadata", func(t *testing.T) {
		if rootCmd.Use != "envlens" {
			t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "envlens")
		}
		if rootCmd.Long == "" {
			t.Error("rootCmd.Long should not be empty")
		}
		if !rootCmd.SilenceUsage || !rootCmd.SilenceErrors {
			t.Error("rootCmd should silence usage and errors, reporting happens in Execute")
		}
	})

	t.Run("all subcommands are registered", func(t *testing.T) {
		commands := []string{"scan", "keys", "get", "set", "rename", "unset", "diff", "watch", "browse", "history", "mcp"}
		for _, name := range commands {
			found := false
			for _, sub := range rootCmd.Commands() {
				if sub.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("subcommand %q not found", name)
			}
		}
	})

	t.Run("help executes without error", func(t *testing.T) {
		testCmd := &cobra.Command{
			Use:   rootCmd.Use,
			Short: rootCmd.Short,
			Long:  rootCmd.Long,
			Run:   func(cmd *cobra.Command, args []string) {},
		}
		testCmd.SetArgs([]string{"--help"})
		var buf bytes.Buffer
		testCmd.SetOut(&buf)

		if err := testCmd.Execute(); err != nil {
			t.Errorf("Execute() with --help error = %v", err)
		}
		if buf.Len() == 0 {
			t.Error("--help should produce output")
		}
	})

	t.Run("version template", func(t *testing.T) {
		SetVersion("1.2.3")
		defer SetVersion("")
		if rootCmd.Version != "1.2.3" {
			t.Errorf("rootCmd.Version = %q, want 1.2.3", rootCmd.Version)
		}
	})
}
