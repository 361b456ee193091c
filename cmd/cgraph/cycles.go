package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cgraph/internal/output"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles <function>",
	Short: "Detect circular call dependencies",
	Long: `Report the circular call dependencies involving a function.

Examples:
  cgraph cycles processOrder
  cgraph cycles processOrder --format=json`,
	Args: cobra.ExactArgs(1),
	Run:  runCycles,
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	format := mustParseFormat()

	ctx := newContext()
	engine := mustGetEngine(ctx, logger)
	defer engine.Close()

	report, err := engine.DetectCycles(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printOrDie(output.RenderCycles(report, format))
}
