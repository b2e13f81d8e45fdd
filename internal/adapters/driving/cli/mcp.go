package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can extract,
save and browse property listings.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead, for example to try it with MCP Inspector.

Tools:     extract_property, save_property, list_properties, get_stats
Resources: estateflow://properties/{propertyId}

Examples:
  # Stdio mode (default)
  estateflow mcp serve

  # HTTP mode
  estateflow mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "estateflow": {
        "command": "/path/to/estateflow",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Properties: propertyService})
	if err != nil {
		return err
	}

	followConfig(cmd.Context())

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
