package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-outline/internal/config"
	"github.com/mvp-joe/code-outline/internal/logging"
	"github.com/mvp-joe/code-outline/internal/mcp"
)

var mcpWatch bool

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing the get_outline tool",
	Long: `Start the Model Context Protocol (MCP) server so LLM-powered coding
assistants can request outlines of files in this project.

The MCP server:
- Exposes the get_outline tool (paths, format, max_depth, named_only, annotate)
- Resolves paths relative to the current directory
- Caches outlines by content, so unchanged files are not re-parsed
- Communicates via stdio (standard MCP transport)

Example:
  outline mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVarP(&mcpWatch, "watch", "w", false, "evict cached outlines as files change")
}

func runMCP(cmd *cobra.Command, args []string) error {
	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.NewLoader(projectPath, cfgFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	// stdout carries the protocol, so logs must stay on stderr.
	logger := logging.New(cfg.Log, os.Stderr)

	svc, err := mcp.NewService(projectPath, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create outline service: %w", err)
	}

	server, err := mcp.NewServer(svc, mcpVersion(), mcpWatch)
	if err != nil {
		svc.Close()
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
