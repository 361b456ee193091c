package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cgraph/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a cgraph configuration",
	Long: `Create .cgraph/config.json with default settings and a starter
deny-list file for non-trackable callees.

Examples:
  cgraph init
  cgraph init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(rootFlag, ".cgraph", "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	denyPath := filepath.Join(".cgraph", "denylist.toml")
	cfg.Analysis.DenyListPath = denyPath

	if err := cfg.Save(rootFlag); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote %s\n", configPath)

	starterPath := filepath.Join(rootFlag, denyPath)
	if err := config.WriteStarterDenyList(starterPath); err != nil {
		if !initForce {
			fmt.Printf("kept existing %s\n", starterPath)
		}
	} else {
		fmt.Printf("wrote %s\n", starterPath)
	}

	return nil
}
