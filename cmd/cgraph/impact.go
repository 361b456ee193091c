package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cgraph/internal/output"
)

var impactDepth int

var impactCmd = &cobra.Command{
	Use:   "impact <function>",
	Short: "Analyze change impact and risk",
	Long: `Analyze the potential impact of changing a function.

Provides:
  - Direct and transitive callers, grouped by hop level
  - Fan-in, fan-out, cyclomatic complexity and hotspot status
  - Circular dependencies involving the function
  - A 0-100 risk score with ranked suggestions

Examples:
  cgraph impact saveUser
  cgraph impact saveUser --depth=5 --format=json`,
	Args: cobra.ExactArgs(1),
	Run:  runImpact,
}

func init() {
	impactCmd.Flags().IntVar(&impactDepth, "depth", 0, "Transitive caller depth, 1-10 (default from config)")
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	format := mustParseFormat()

	ctx := newContext()
	engine := mustGetEngine(ctx, logger)
	defer engine.Close()

	report, err := engine.AnalyzeImpact(ctx, args[0], impactDepth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printOrDie(output.RenderImpact(report, format))
}
