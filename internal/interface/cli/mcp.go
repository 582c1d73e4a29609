package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/cmd/scjournal/mcp"
	"github.com/neilberkman/scjournal/internal/core/config"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server for assistant integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio so an assistant
can list sessions, read statistics and search your activity logs.

Configure in your MCP client:
  {
    "mcpServers": {
      "scjournal": {
        "command": "scjournal",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	path := dbPath
	if path == "" {
		var cfg *config.Config
		var err error
		if configDir != "" {
			cfg, err = config.LoadFrom(configDir)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.DBPath
	}

	if err := mcp.StartServer(path); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
