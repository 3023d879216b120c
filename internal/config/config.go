// Package config provides configuration loading for lexweb.
//
// Precedence, lowest first: defaults, YAML file, LEXWEB_* environment
// variables, command-line flags. Flags are applied by the CLI after Load.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvDatabase  = "LEXWEB_DB"
	EnvOwner     = "LEXWEB_OWNER"
	EnvLogLevel  = "LEXWEB_LOG_LEVEL"
	EnvLogFormat = "LEXWEB_LOG_FORMAT"
)

// DefaultDatabase is used when no database path is configured.
const DefaultDatabase = "lexweb.db"

// Config is the complete lexweb configuration.
type Config struct {
	// Database is the SQLite file path.
	Database string `yaml:"database"`
	// Owner is the identity that owns created collections.
	Owner string `yaml:"owner"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database:  DefaultDatabase,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the process environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file. Unknown keys are
// rejected so typos surface instead of being ignored.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge copies the non-empty fields of other into c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Database != "" {
		c.Database = other.Database
	}
	if other.Owner != "" {
		c.Owner = other.Owner
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
}

// ApplyEnv overrides fields from LEXWEB_* variables. lookup is usually
// os.LookupEnv; tests pass a map-backed function.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	env := &Config{}
	if v, ok := lookup(EnvDatabase); ok {
		env.Database = v
	}
	if v, ok := lookup(EnvOwner); ok {
		env.Owner = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		env.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		env.LogFormat = v
	}
	c.Merge(env)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", name)
	}
}

// NewLogger builds the slog logger described by c, writing to w.
// c must have passed Validate.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
