// Package commands implements the dumpcsv subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dumpcsv/internal/cli/config"
	"github.com/leapstack-labs/dumpcsv/internal/cli/output"
	"github.com/leapstack-labs/dumpcsv/internal/state"

	_ "github.com/leapstack-labs/dumpcsv/pkg/dialects/ansi"     // register ansi
	_ "github.com/leapstack-labs/dumpcsv/pkg/dialects/mysql"    // register mysql
	_ "github.com/leapstack-labs/dumpcsv/pkg/dialects/postgres" // register postgres
	_ "github.com/leapstack-labs/dumpcsv/pkg/dialects/sqlite"   // register sqlite
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context from the loaded config and the
// logger stored by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// OpenStore opens the run-history database.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, err
	}
	return store, nil
}

// getConfig returns the current configuration, or defaults when none was
// loaded (commands executed directly in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dest:          config.DefaultDest,
		Dialect:       config.DefaultDialect,
		Encoding:      config.DefaultEncoding,
		MaxOpenTables: config.DefaultMaxOpenTables,
		Reopen:        config.DefaultReopen,
		OutputFormat:  config.DefaultOutput,
		LogLevel:      config.DefaultLogLevel,
		LogFormat:     config.DefaultLogFormat,
		StatePath:     config.DefaultStatePath(),
	}
}
