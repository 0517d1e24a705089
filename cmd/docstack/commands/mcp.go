// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use the corpus via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docstack/docstack/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs docstack as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to ingest and query PDF documents via stdio.

Configure in Claude Desktop's config file to enable document tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  docstack mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docstack": {
  #       "command": "docstack",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	st, err := openStack()
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"docstack Document QA",
		"0.1.0",
	)

	mcp.RegisterTools(server, st.ingestor, st.engine, st.index)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("docstack MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		// Flush the index so nothing ingested this session is lost.
		if err := st.index.Persist(); err != nil {
			log.Printf("Warning: Error persisting index: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
