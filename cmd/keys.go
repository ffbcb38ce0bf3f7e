package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/tui"
)

var keysCmd = &cobra.Command{
	Use:   "keys FILE",
	Short: "List the key/value entries of an env file",
	Long: `Print every key-value line of the file in document order, duplicates
included. Duplicated keys are flagged; they are reported, never fixed.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	kvs := envline.KeyValues(s.Lines())
	dups := s.Duplicates()

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderKeyValues(kvs, dups))
	if len(dups) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%s duplicate keys: %s\n",
			tui.Warning("!"), strings.Join(dups, ", "))
	}
	return nil
}
