// Package sqlite provides the SQLite dialect for `.dump` output.
package sqlite

import (
	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite accepts every identifier quoting style SQLite does.
var SQLite = dialect.NewDialect("sqlite").
	Aliases("sqlite3").
	Description("SQLite: \"quoted\", `backtick` and [bracket] identifiers").
	Identifiers(core.DoubleQuote, core.Backtick, core.Bracket).
	Build()
