// Package postgres provides the PostgreSQL dialect for pg_dump output
// written with --inserts.
package postgres

import "github.com/leapstack-labs/dumpcsv/pkg/core"

// Config is the PostgreSQL dialect configuration.
// This is pure data; the parser reads it directly.
var Config = &core.DialectConfig{
	Name:        "postgres",
	Aliases:     []string{"postgresql", "pg"},
	Description: "PostgreSQL: \"quoted\" identifiers, E'' escape strings",
	Identifiers: core.IdentifierConfig{
		Quotes: []core.IdentifierQuote{core.DoubleQuote},
	},
	// Backslashes are literal in standard strings (standard_conforming_strings=on)
	EscapeStrings: true,
}
