// Package config loads the litetype CLI configuration.
//
// Values are layered with koanf: built-in defaults, then litetype.yaml,
// then LITETYPE_* environment variables, then flags set on the command line.
package config

import (
	"strings"

	"github.com/leapstack-labs/litetype/pkg/sqlite"
)

// Output formats accepted by the output key.
const (
	OutputAuto     = "auto"
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputCSV      = "csv"
	OutputMarkdown = "md"
)

// Default configuration values.
const (
	DefaultDatabase = ":memory:"
	DefaultOutput   = OutputAuto
	DefaultLogLevel = "warn"
)

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "LITETYPE_"

// Config holds the CLI configuration.
type Config struct {
	Database      string         `koanf:"database"`
	Output        string         `koanf:"output"`
	Verbose       bool           `koanf:"verbose"`
	LogLevel      string         `koanf:"log_level"`
	MaxBindLength int            `koanf:"max_bind_length"`
	Params        map[string]any `koanf:"params"`
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Database:      DefaultDatabase,
		Output:        DefaultOutput,
		LogLevel:      DefaultLogLevel,
		MaxBindLength: sqlite.DefaultMaxLength,
	}
}

// OutputFormats returns the accepted values of the output key.
func OutputFormats() []string {
	return []string{OutputAuto, OutputTable, OutputJSON, OutputYAML, OutputCSV, OutputMarkdown}
}

// UnknownOutputError is returned when the output key names no known format.
type UnknownOutputError struct {
	Format string
}

func (e *UnknownOutputError) Error() string {
	return "unknown output format: " + e.Format +
		"\nAvailable formats: " + strings.Join(OutputFormats(), ", ")
}

// Validate checks the loaded values and normalizes the output format.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.Output == "markdown" {
		c.Output = OutputMarkdown
	}
	for _, f := range OutputFormats() {
		if c.Output == f {
			return nil
		}
	}
	return &UnknownOutputError{Format: c.Output}
}
