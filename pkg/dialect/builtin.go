package dialect

import "github.com/leapstack-labs/dumpcsv/pkg/core"

// Generic is the permissive fallback dialect: double-quote and backtick
// identifiers, standard string literals.
var Generic = NewDialect("generic").
	Aliases("other").
	Description("permissive fallback for unknown dialect names").
	Identifiers(core.DoubleQuote, core.Backtick).
	Build()

func init() {
	// Register the builtin generic dialect and set it as default
	Register(Generic)
	SetDefault(Generic)
}
