package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/envline"
)

var getCmd = &cobra.Command{
	Use:   "get FILE KEY",
	Short: "Print the value of a key",
	Long: `Print the value of KEY in FILE. When the key is duplicated the last
occurrence in document order wins, matching the diff projection.`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	// Lookup keys are taken as written; normalization applies only to
	// keys being created or renamed to.
	key := args[1]

	value := ""
	found := false
	for _, kv := range envline.KeyValues(s.Lines()) {
		if kv.Key == key {
			value = kv.Value
			found = true
		}
	}
	if !found {
		return fmt.Errorf("key %q not found in %s", key, args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
