package main

import (
	"github.com/spf13/cobra"

	"cgraph/internal/output"
)

var (
	functionsPrefix string
	functionsLimit  int
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List indexed functions",
	Long: `List every function in the call index, with its canonical definition
location. Functions defined under the same name in several files show a
definition count.

Examples:
  cgraph functions
  cgraph functions --prefix=handle --format=json`,
	Run: runFunctions,
}

func init() {
	functionsCmd.Flags().StringVar(&functionsPrefix, "prefix", "", "Only list functions with this name prefix")
	functionsCmd.Flags().IntVar(&functionsLimit, "limit", 0, "Maximum number of functions to list (0 = all)")
	rootCmd.AddCommand(functionsCmd)
}

func runFunctions(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	format := mustParseFormat()

	ctx := newContext()
	engine := mustGetEngine(ctx, logger)
	defer engine.Close()

	printOrDie(output.RenderFunctions(engine.ListFunctions(functionsPrefix, functionsLimit), format))
}
