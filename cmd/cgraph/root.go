package main

import (
	"cgraph/internal/version"

	"github.com/spf13/cobra"
)

var (
	rootFlag     string
	formatFlag   string
	logLevelFlag string
	noCacheFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "cgraph",
	Short: "cgraph - call graph and change impact analysis",
	Long: `cgraph builds call graphs for JavaScript, TypeScript, Python and Go
projects and answers: who calls this function, what does it call, and how
risky is changing it? Facts come from tree-sitter parsing or a SCIP index.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("cgraph version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Project root to analyze")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "tree", "Output format (json, tree, mermaid, yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Disable the fact cache for this run")
}
