package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/history"
	"github.com/envlens/envlens/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history [DIR]",
	Short: "Show the edit log",
	Long: `Show the append-only log of edits made through envlens in DIR (default:
current directory). Entries are hash-chained; --verify rechecks the chain.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLast   int
	historyVerify bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLast, "last", "n", 20, "Number of entries to show")
	historyCmd.Flags().BoolVar(&historyVerify, "verify", false, "Verify the hash chain instead of listing")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	if historyVerify {
		res, err := history.Verify(dir)
		if errors.Is(err, history.ErrNoHistory) {
			fmt.Fprintln(cmd.OutOrStdout(), tui.Muted("no history"))
			return nil
		}
		if err != nil {
			return err
		}
		if len(res.Breaks) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries, chain intact\n", tui.Success("✓"), res.TotalEntries)
			return nil
		}
		return fmt.Errorf("history chain broken at entries %v", res.Breaks)
	}

	entries, err := history.Show(dir, historyLast)
	if errors.Is(err, history.ErrNoHistory) {
		fmt.Fprintln(cmd.OutOrStdout(), tui.Muted("no history"))
		return nil
	}
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-7s %s %s\n",
			tui.Muted(e.Timestamp.Local().Format(time.DateTime)),
			e.Op,
			e.File,
			tui.Key(strings.Join(e.Keys, ", ")))
	}
	return nil
}
