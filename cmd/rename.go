package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/history"
	"github.com/envlens/envlens/internal/tui"
)

var renameCmd = &cobra.Command{
	Use:   "rename FILE OLD NEW",
	Short: "Rename a key",
	Long: `Rename OLD to NEW in FILE, keeping line positions and values. If OLD is
duplicated, every occurrence is renamed. The new name is normalized the
same way as in set.`,
	Args: cobra.ExactArgs(3),
	RunE: runRename,
}

var renameBackup bool

func init() {
	renameCmd.Flags().BoolVarP(&renameBackup, "backup", "b", false, "Copy the file aside before writing")
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	// The old key is a lookup and taken as written; only the new name
	// goes through the key policy.
	oldKey := args[1]
	newKey, err := normalizeKeyArg(args[2])
	if err != nil {
		return err
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	if !hasKey(s.Lines(), oldKey) {
		return fmt.Errorf("key %q not found in %s", oldKey, args[0])
	}

	s.Apply(document.RenameKey{OldKey: oldKey, NewKey: newKey})

	if err := saveSession(s, backupEnabled(renameBackup, s.File().FolderPath)); err != nil {
		return err
	}
	_ = history.Log(s.File().FolderPath, history.OpRename, s.File().FileName, oldKey, newKey)

	fmt.Fprintf(os.Stderr, "%s %s renamed to %s\n", tui.Success("✓"), tui.Label(oldKey), tui.Label(newKey))
	return nil
}

func hasKey(lines []envline.Line, key string) bool {
	for _, kv := range envline.KeyValues(lines) {
		if kv.Key == key {
			return true
		}
	}
	return false
}
