package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/storage/memory"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/sandbox"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local stand-in property service",
	Long: `Serve the property service API from memory, for trying EstateFlow
without the real backend. Extraction uses simple built-in rules and nothing
is kept after the process exits.

Examples:
  estateflow sandbox
  estateflow --api-url http://localhost:9000 tui   # after: estateflow sandbox --port 9000`,
	Args: cobra.NoArgs,
	RunE: runSandbox,
}

func init() {
	sandboxCmd.Flags().IntP("port", "p", 8000, "HTTP port (0 = first free port from 8000)")
	sandboxCmd.Flags().String("host", "localhost", "interface to listen on")
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return fmt.Errorf("getting host flag: %w", err)
	}

	if port == 0 {
		port, err = sandbox.FreePort(host, sandbox.PortRangeStart, sandbox.PortRangeEnd)
		if err != nil {
			return err
		}
	}

	store := memory.NewPropertyStore()
	server, err := sandbox.NewServer(store, store.Images(), version)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	cmd.Printf("Sandbox property service listening on http://%s\n", addr)
	cmd.Println("Press Ctrl+C to stop.")
	return server.ListenAndServe(cmd.Context(), addr)
}
