package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/history"
	"github.com/envlens/envlens/internal/tui"
)

var unsetCmd = &cobra.Command{
	Use:   "unset FILE KEY",
	Short: "Remove a key",
	Long: `Remove every line carrying KEY from FILE. All other lines keep their
position and formatting. Asks for confirmation unless --yes is passed.`,
	Args: cobra.ExactArgs(2),
	RunE: runUnset,
}

var (
	unsetBackup bool
	unsetYes    bool
)

func init() {
	unsetCmd.Flags().BoolVarP(&unsetBackup, "backup", "b", false, "Copy the file aside before writing")
	unsetCmd.Flags().BoolVarP(&unsetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(unsetCmd)
}

func runUnset(cmd *cobra.Command, args []string) error {
	key, err := normalizeKeyArg(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !hasKey(s.Lines(), key) {
		return fmt.Errorf("key %q not found in %s", key, args[0])
	}

	if !unsetYes {
		ok, err := tui.Confirm(fmt.Sprintf("Remove %s from %s?", key, s.File().FileName))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	s.Apply(document.RemoveKey{Key: key})

	if err := saveSession(s, backupEnabled(unsetBackup, s.File().FolderPath)); err != nil {
		return err
	}
	_ = history.Log(s.File().FolderPath, history.OpUnset, s.File().FileName, key)

	fmt.Fprintf(os.Stderr, "%s %s removed\n", tui.Success("✓"), tui.Label(key))
	return nil
}
