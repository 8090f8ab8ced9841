package mysql

import (
	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect.
var MySQL = dialect.FromConfig(Config).
	ParseWith(parse).
	Build()

// parse tries the vitess grammar and falls back to the in-house parser.
func parse(d *dialect.Dialect, sql string) ([]core.Statement, error) {
	stmts, err := parseVitess(sql)
	if err == nil {
		return stmts, nil
	}
	return d.ParseDefault(sql)
}
