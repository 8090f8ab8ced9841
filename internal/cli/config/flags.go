package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/dumpcsv/internal/cli/output"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

// RegisterFlags adds the global flags read by LoadConfig. Defaults are left
// empty where the config layer owns them so that only changed flags apply.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: ./dumpcsv.yaml)")
	fs.StringP("input", "i", "", "Input SQL dump file")
	fs.String("output-dir", "", "Parent directory for the <input>-output folder")
	fs.String("dest", DefaultDest, "Accepted for compatibility; unused")
	fs.String("dialect", DefaultDialect, "SQL dialect (mysql, postgres, sqlite, ansi, generic)")
	fs.String("encoding", DefaultEncoding, "Input character encoding (WHATWG label)")
	fs.Int("max-open-tables", DefaultMaxOpenTables, "Open CSV files before a flush")
	fs.String("reopen", string(DefaultReopen), "Flushed table handling when seen again: truncate|append")
	fs.String("scratch-dir", "", "Parent of the scratch directory (default: OS temp dir)")
	fs.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	fs.String("log-level", "", "Log level (debug|info|warn|error)")
	fs.String("log-format", "", "Log format (text|json)")
	fs.String("state", "", "Path to run history database")
	fs.Bool("no-history", false, "Do not record this run")
	fs.BoolP("verbose", "v", false, "Verbose output")
}

// RegisterCompletions adds shell completion for enumerated flags.
func RegisterCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	_ = cmd.RegisterFlagCompletionFunc("output", fixed(output.Modes...))
	_ = cmd.RegisterFlagCompletionFunc("reopen", fixed("truncate", "append"))
	_ = cmd.RegisterFlagCompletionFunc("log-level", fixed("debug", "info", "warn", "error"))
	_ = cmd.RegisterFlagCompletionFunc("log-format", fixed("text", "json"))
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
}
