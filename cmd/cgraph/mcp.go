package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cgraph/internal/logging"
	"cgraph/internal/mcp"
	"cgraph/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Run cgraph as a Model Context Protocol server, exposing the
build_call_graph, analyze_impact, list_functions and detect_cycles tools
over newline-delimited JSON-RPC on stdio.

Logs go to stderr; stdout carries only protocol messages.`,
	Run: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	// JSON logs on stderr so supervisors can ingest them.
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.LogLevel(firstNonEmpty(logLevelFlag, os.Getenv("CGRAPH_LOG_LEVEL"), "info")),
	})

	ctx := newContext()
	engine := mustGetEngine(ctx, logger)
	defer engine.Close()

	server := mcp.NewServer(version.Version, engine, logger)
	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
