package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/history"
	"github.com/envlens/envlens/internal/tui"
)

var setCmd = &cobra.Command{
	Use:   "set FILE KEY [VALUE]",
	Short: "Set an environment variable",
	Long: `Upsert KEY in FILE. An existing key keeps its line position; a new key is
inserted after the last key-value line. If the key is duplicated every
occurrence is set to the new value. When VALUE is omitted it is read
interactively. Key names are normalized: uppercased, whitespace runs
replaced with underscores.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSet,
}

var setBackup bool

func init() {
	setCmd.Flags().BoolVarP(&setBackup, "backup", "b", false, "Copy the file aside before writing")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	key, err := normalizeKeyArg(args[1])
	if err != nil {
		return err
	}

	var value string
	if len(args) == 3 {
		value = args[2]
	} else {
		value, err = tui.ValueInput(fmt.Sprintf("Value for %s", key))
		if err != nil {
			return err
		}
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	s.Apply(document.SetKey{Key: key, Value: value})

	if err := saveSession(s, backupEnabled(setBackup, s.File().FolderPath)); err != nil {
		return err
	}
	_ = history.Log(s.File().FolderPath, history.OpSet, s.File().FileName, key)

	fmt.Fprintf(os.Stderr, "%s %s set\n", tui.Success("✓"), tui.Label(key))
	return nil
}
