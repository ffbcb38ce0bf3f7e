package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/config"
	"github.com/envlens/envlens/internal/scanner"
	"github.com/envlens/envlens/internal/tui"
	"github.com/envlens/envlens/internal/workspace"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Find env files under a directory tree",
	Long: `Walk a directory tree and list every .env and .env.* file, grouped by the
project folder containing it. Without an argument the workspace root is
auto-detected. Ctrl-C cancels a scan in flight without reporting an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var (
	scanExcludeDirs  []string
	scanExcludeFiles []string
	scanOutput       string
)

func init() {
	scanCmd.Flags().StringSliceVarP(&scanExcludeDirs, "exclude", "e", nil, "Additional directory names to skip")
	scanCmd.Flags().StringSliceVarP(&scanExcludeFiles, "exclude-files", "E", nil, "File name or glob patterns to skip")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Output format: default (human), json")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
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

	opts := scanner.Options{
		ExcludeDirs:  scanExcludeDirs,
		ExcludeFiles: scanExcludeFiles,
	}
	if cfg, err := config.Load(absRoot); err == nil {
		opts.ExcludeDirs = append(opts.ExcludeDirs, cfg.Scan.ExcludeDirs...)
		opts.ExcludeFiles = append(opts.ExcludeFiles, cfg.Scan.ExcludeFiles...)
	}
	if ign, err := scanner.LoadGitignore(absRoot); err == nil {
		opts.Ignore = ign
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := scanner.Scan(ctx, absRoot, opts)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), tui.Muted("scan canceled"))
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan %s: %w", absRoot, err)
	}

	if scanOutput == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printScanResult(cmd.OutOrStdout(), res)
	return nil
}

func printScanResult(w io.Writer, res *scanner.Result) {
	total := 0
	var paths []string
	for _, g := range res.Groups {
		for _, f := range g.Files {
			total++
			rel, err := filepath.Rel(res.RootPath, f.AbsolutePath)
			if err != nil {
				rel = f.AbsolutePath
			}
			paths = append(paths, rel)
		}
	}

	if total == 0 {
		fmt.Fprintln(w, tui.Muted("no env files found"))
		return
	}

	fmt.Fprintf(w, "%s%s %s\n\n", tui.Label("Root: "), res.RootPath,
		tui.Muted(fmt.Sprintf("(%d files, %d projects)", total, len(res.Groups))))

	tree := workspace.BuildTree(paths)
	workspace.PrintTree(w, tree, "", true)
}
