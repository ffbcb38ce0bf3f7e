package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server (stdio) for AI/IDE integration",
	Long: `Run the Model Context Protocol server on stdio. Exposes scan_env_files,
list_keys, get_value, set_value, rename_key, delete_key, diff_files, and
find_duplicates, all backed by the same round-trip-safe editing engine as
the CLI.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcpserver.Run(context.Background())
}
