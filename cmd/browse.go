package cmd

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/config"
	"github.com/envlens/envlens/internal/scanner"
	"github.com/envlens/envlens/internal/tui"
	"github.com/envlens/envlens/internal/workspace"
)

var browseCmd = &cobra.Command{
	Use:   "browse [root]",
	Short: "Browse and edit env files interactively",
	Long: `Scan a directory tree and browse the env files it contains in a terminal
UI. Pick a file to inspect its entries, edit or delete values, and save
with the same formatting guarantees as the non-interactive commands.
Esc cancels a scan in flight and returns to the start screen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

var browseBackup bool

func init() {
	browseCmd.Flags().BoolVarP(&browseBackup, "backup", "b", false, "Create a backup before each save")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	} else if wsRoot, err := workspace.FindRoot("."); err == nil {
		root = wsRoot
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve scan root: %w", err)
	}

	var opts scanner.Options
	if cfg, err := config.Load(absRoot); err == nil {
		opts.ExcludeDirs = cfg.Scan.ExcludeDirs
		opts.ExcludeFiles = cfg.Scan.ExcludeFiles
	}
	if ign, err := scanner.LoadGitignore(absRoot); err == nil {
		opts.Ignore = ign
	}

	model := tui.NewBrowse(absRoot, opts, backupEnabled(browseBackup, absRoot))
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
