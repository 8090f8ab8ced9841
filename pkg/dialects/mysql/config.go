// Package mysql provides the MySQL dialect for mysqldump output.
//
// Statements are parsed with github.com/xwb1989/sqlparser first. Text that
// grammar rejects, and CREATE TABLE forms it only recognises partially, go
// through the in-house parser configured for MySQL lexing.
package mysql

import "github.com/leapstack-labs/dumpcsv/pkg/core"

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        "mysql",
	Aliases:     []string{"mariadb"},
	Description: "MySQL/MariaDB: `backtick` identifiers, backslash escapes, # comments",
	Identifiers: core.IdentifierConfig{
		Quotes: []core.IdentifierQuote{core.Backtick},
	},
	BackslashEscapes: true,
	HashComments:     true,
}
