package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"cgraph/internal/lang"
)

// Config represents the complete cgraph configuration
type Config struct {
	Version     int    `json:"version" mapstructure:"version"`
	ProjectRoot string `json:"projectRoot" mapstructure:"projectRoot"`

	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Source   SourceConfig   `json:"source" mapstructure:"source"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls project file discovery
type ScanConfig struct {
	Languages        []string `json:"languages" mapstructure:"languages"`
	Ignore           []string `json:"ignore" mapstructure:"ignore"`
	MaxFileSizeBytes int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// SourceConfig selects where call facts come from
type SourceConfig struct {
	// Mode is "auto", "treesitter" or "scip". Auto prefers a SCIP index
	// when one exists at ScipIndexPath and falls back to tree-sitter.
	Mode          string `json:"mode" mapstructure:"mode"`
	ScipIndexPath string `json:"scipIndexPath" mapstructure:"scipIndexPath"`
}

// AnalysisConfig controls traversal defaults and the deny list
type AnalysisConfig struct {
	DefaultDepth int    `json:"defaultDepth" mapstructure:"defaultDepth"`
	MaxDepth     int    `json:"maxDepth" mapstructure:"maxDepth"`
	DenyListPath string `json:"denyListPath" mapstructure:"denyListPath"`
}

// CacheConfig controls the fact cache
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		ProjectRoot: ".",
		Scan: ScanConfig{
			Languages:        []string{},
			Ignore:           []string{"node_modules", "vendor", "dist", "build", "__pycache__"},
			MaxFileSizeBytes: lang.DefaultMaxFileSize,
		},
		Source: SourceConfig{
			Mode:          "auto",
			ScipIndexPath: ".scip/index.scip",
		},
		Analysis: AnalysisConfig{
			DefaultDepth: 3,
			MaxDepth:     10,
			DenyListPath: "",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .cgraph/config.json, falling back to
// defaults when no config file exists.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("projectRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".cgraph"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .cgraph/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".cgraph")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Source.Mode {
	case "auto", "treesitter", "scip":
	default:
		return &ConfigError{Field: "source.mode", Message: "must be auto, treesitter or scip"}
	}
	if c.Analysis.DefaultDepth < 1 || c.Analysis.DefaultDepth > 10 {
		return &ConfigError{Field: "analysis.defaultDepth", Message: "must be between 1 and 10"}
	}
	if c.Analysis.MaxDepth < 1 || c.Analysis.MaxDepth > 10 {
		return &ConfigError{Field: "analysis.maxDepth", Message: "must be between 1 and 10"}
	}
	return nil
}

// ScanOptions converts the scan section into front-end scan options.
func (c *Config) ScanOptions() lang.ScanOptions {
	langs := make([]lang.Language, 0, len(c.Scan.Languages))
	for _, l := range c.Scan.Languages {
		langs = append(langs, lang.Language(l))
	}
	return lang.ScanOptions{
		Languages:   langs,
		IgnoreDirs:  c.Scan.Ignore,
		MaxFileSize: c.Scan.MaxFileSizeBytes,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
