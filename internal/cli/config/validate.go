package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/dumpcsv/internal/cli/output"
	"github.com/leapstack-labs/dumpcsv/internal/dump"
	"github.com/leapstack-labs/dumpcsv/internal/logging"
	"github.com/leapstack-labs/dumpcsv/internal/registry"
)

// Validate checks settings shared by every command.
func (c *Config) Validate() error {
	if c.MaxOpenTables < 1 {
		return fmt.Errorf("max_open_tables must be at least 1, got %d", c.MaxOpenTables)
	}
	switch c.Reopen {
	case registry.ReopenTruncate, registry.ReopenAppend:
	default:
		return fmt.Errorf("reopen must be truncate or append, got %q", c.Reopen)
	}
	if !slices.Contains(output.Modes, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("output must be one of %s, got %q", strings.Join(output.Modes, ", "), c.OutputFormat)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if err := dump.ValidateEncoding(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}

// ValidateConvert checks the settings a conversion needs.
func (c *Config) ValidateConvert() error {
	if c.Input == "" {
		return fmt.Errorf("input is required\nHint: pass --input <dump.sql> or set DUMPCSV_INPUT")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required\nHint: pass --output-dir <dir> or set DUMPCSV_OUTPUT_DIR")
	}
	return nil
}

// EffectiveLogLevel returns the log level, raised to info when verbose.
func (c *Config) EffectiveLogLevel() string {
	if c.Verbose && logging.ParseLevel(c.LogLevel) > slog.LevelInfo {
		return "info"
	}
	return c.LogLevel
}
