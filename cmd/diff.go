package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/tui"
)

var diffCmd = &cobra.Command{
	Use:   "diff BEFORE AFTER",
	Short: "Semantic diff of two env files",
	Long: `Compare the key/value projections of two env files and print one change
per key: added, updated, or removed, ordered by key. Comment and blank-line
differences never appear. On duplicated keys the last occurrence wins the
projection. --text adds a character-level diff of the raw content.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var (
	diffText   bool
	diffOutput string
)

func init() {
	diffCmd.Flags().BoolVarP(&diffText, "text", "t", false, "Also print a character-level text diff")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "", "Output format: default (human), json")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	before, err := openSession(args[0])
	if err != nil {
		return err
	}
	after, err := openSession(args[1])
	if err != nil {
		return err
	}

	changes := envline.Diff(before.Lines(), after.Lines())

	if diffOutput == "json" {
		out := struct {
			Before  string           `json:"before"`
			After   string           `json:"after"`
			Changes []envline.Change `json:"changes"`
		}{args[0], args[1], changes}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiff(changes))

	if diffText {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(before.RawText(), after.RawText(), false)
		dmp.DiffCleanupSemantic(diffs)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n%s\n", tui.Label("Text diff:"), dmp.DiffPrettyText(diffs))
	}
	return nil
}
