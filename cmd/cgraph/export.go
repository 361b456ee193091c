package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cgraph/internal/graph"
	"cgraph/internal/output"
)

var (
	exportOut       string
	exportDepth     int
	exportDirection string
)

var exportCmd = &cobra.Command{
	Use:   "export <function>",
	Short: "Export a call graph to a file",
	Long: `Export a call graph as JSON. Output paths ending in .zst are
zstd-compressed, which keeps whole-project exports small.

Examples:
  cgraph export main --out=graph.json
  cgraph export main --out=graph.json.zst --depth=10 --direction=both`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "callgraph.json", "Output file path (.json or .json.zst)")
	exportCmd.Flags().IntVar(&exportDepth, "depth", 10, "Traversal depth, 1-10")
	exportCmd.Flags().StringVar(&exportDirection, "direction", "both", "Traversal direction (callers, callees, both)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)

	direction, ok := graph.ParseDirection(exportDirection)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid direction %q (callers, callees, both)\n", exportDirection)
		os.Exit(1)
	}

	ctx := newContext()
	engine := mustGetEngine(ctx, logger)
	defer engine.Close()

	result, err := engine.GetCallGraph(args[0], exportDepth, direction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := output.WriteExport(exportOut, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("exported %d nodes, %d edges to %s\n",
		len(result.Graph.Nodes), len(result.Graph.Edges), exportOut)
}
