// Package config loads nexus configuration from YAML files with environment
// variable expansion and duration parsing.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phronesis/nexus-go/pkg/nexus"
)

// EnvConfigPath names the environment variable consulted when no --config
// flag is given.
const EnvConfigPath = "NEXUS_CONFIG"

// Config represents the complete nexus configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Workbook WorkbookConfig `yaml:"workbook"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Portal   PortalConfig   `yaml:"portal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// WorkbookConfig holds the feedback workbook location and locking behaviour
type WorkbookConfig struct {
	Path        string        `yaml:"path"`
	LockTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	LockTimeoutRaw string `yaml:"lock_timeout"`
}

// CatalogConfig points at an optional catalog file; empty means the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// PortalConfig holds page content and layout
type PortalConfig struct {
	Title       string `yaml:"title"`
	Quote       string `yaml:"quote"`
	QuoteAuthor string `yaml:"quote_author"`
	Footer      string `yaml:"footer"`
	LogoPath    string `yaml:"logo_path"`
	IconsDir    string `yaml:"icons_dir"`
	Columns     int    `yaml:"columns"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{HTTPAddr: ":8501"},
		Workbook: WorkbookConfig{
			Path:        "feedback.xlsx",
			LockTimeout: nexus.DefaultLockTimeout,
		},
		Portal: PortalConfig{
			Title:       "Phronesis Nexus",
			Quote:       "You cannot mandate productivity, you must provide the tools to let people become their best.",
			QuoteAuthor: "Steve Jobs",
			Footer:      "© 2025 Phronesis Partners. All rights reserved.",
			LogoPath:    "ppl_logo.png",
			Columns:     2,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Keys missing from the file keep their Default values.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve picks the config source: an explicit path, then $NEXUS_CONFIG, then
// the defaults.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Workbook.Path == "" {
		return fmt.Errorf("workbook.path is required")
	}

	if c.Workbook.LockTimeout <= 0 {
		return fmt.Errorf("workbook.lock_timeout must be positive")
	}

	if c.Portal.Columns < 1 || c.Portal.Columns > 6 {
		return fmt.Errorf("portal.columns must be between 1 and 6, got %d", c.Portal.Columns)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Workbook.LockTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Workbook.LockTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing lock_timeout %q: %w", cfg.Workbook.LockTimeoutRaw, err)
		}
		cfg.Workbook.LockTimeout = d
	}

	return nil
}
