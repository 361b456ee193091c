package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cgraph/internal/graph"
	"cgraph/internal/output"
)

var (
	callgraphDepth     int
	callgraphDirection string
)

var callgraphCmd = &cobra.Command{
	Use:   "callgraph <function>",
	Short: "Build a call graph around a function",
	Long: `Build a depth-bounded call graph around a function.

Examples:
  cgraph callgraph handleRequest
  cgraph callgraph handleRequest --depth=3 --direction=callees
  cgraph callgraph handleRequest --format=mermaid`,
	Args: cobra.ExactArgs(1),
	Run:  runCallgraph,
}

func init() {
	callgraphCmd.Flags().IntVar(&callgraphDepth, "depth", 0, "Traversal depth, 1-10 (default from config)")
	callgraphCmd.Flags().StringVar(&callgraphDirection, "direction", "both", "Traversal direction (callers, callees, both)")
	rootCmd.AddCommand(callgraphCmd)
}

func runCallgraph(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	format := mustParseFormat()

	direction, ok := graph.ParseDirection(callgraphDirection)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid direction %q (callers, callees, both)\n", callgraphDirection)
		os.Exit(1)
	}

	ctx := newContext()
	engine := mustGetEngine(ctx, logger)
	defer engine.Close()

	result, err := engine.GetCallGraph(args[0], callgraphDepth, direction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printOrDie(output.RenderGraph(result, format))
}
