package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cgraph/internal/config"
	"cgraph/internal/logging"
	"cgraph/internal/output"
	"cgraph/internal/query"
)

// newLogger builds the CLI logger. JSON output implies JSON logs so scripted
// consumers get one machine-readable stream.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}

	level := logLevelFlag
	if level == "" {
		level = os.Getenv("CGRAPH_LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}

	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.LogLevel(level),
	})
}

// loadConfig loads the project config, falling back to defaults on error.
func loadConfig(logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		logger.Warn("failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// mustGetEngine builds the analysis engine or exits.
func mustGetEngine(ctx context.Context, logger *logging.Logger) *query.Engine {
	cfg := loadConfig(logger)
	engine, err := query.NewEngine(ctx, rootFlag, cfg, logger, query.Options{NoCache: noCacheFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return engine
}

// newContext returns a context cancelled on SIGINT/SIGTERM.
func newContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()
	return ctx
}

// mustParseFormat validates the --format flag or exits.
func mustParseFormat() output.Format {
	format, ok := output.ParseFormat(formatFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q (json, tree, mermaid, yaml)\n", formatFlag)
		os.Exit(1)
	}
	return format
}

// printOrDie renders and prints, exiting on render failure.
func printOrDie(text string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(text)
}
