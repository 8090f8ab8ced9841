// Package config loads dumpcsv configuration from defaults, a YAML file,
// DUMPCSV_* environment variables and command-line flags.
package config

import "github.com/leapstack-labs/dumpcsv/internal/registry"

// Config holds all CLI configuration options.
type Config struct {
	Input     string `koanf:"input"`
	OutputDir string `koanf:"output_dir"`
	Dest      string `koanf:"dest"` // accepted, not used by the pipeline
	Dialect   string `koanf:"dialect"`
	Encoding  string `koanf:"encoding"`

	MaxOpenTables int                   `koanf:"max_open_tables"`
	Reopen        registry.ReopenPolicy `koanf:"reopen"`
	ScratchDir    string                `koanf:"scratch_dir"`

	OutputFormat string `koanf:"output"`
	LogLevel     string `koanf:"log_level"`
	LogFormat    string `koanf:"log_format"`
	Verbose      bool   `koanf:"verbose"`

	History   bool   `koanf:"history"`
	StatePath string `koanf:"state_path"`
}

// Default configuration values.
const (
	DefaultDest          = "./"
	DefaultDialect       = "mysql"
	DefaultEncoding      = "utf-8"
	DefaultMaxOpenTables = registry.DefaultMaxOpen
	DefaultReopen        = registry.ReopenTruncate
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultStateFile     = "state.db"
)
