// Package ansi provides the strict ANSI SQL dialect: double-quoted
// identifiers only and standard string literals.
package ansi

import (
	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the standard SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	Description("standard SQL: \"quoted\" identifiers, '' escapes only").
	Identifiers(core.DoubleQuote).
	Build()
