package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
)

func parseOne(t *testing.T, sql string, cfg *core.DialectConfig) core.Statement {
	t.Helper()
	stmts, err := ParseStatements(sql, cfg)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestParseCreateTable(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		cfg     *core.DialectConfig
		table   core.ObjectName
		columns []string
	}{
		{
			name: "mysqldump",
			sql: "CREATE TABLE `users` (\n" +
				"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
				"  `name` varchar(255) DEFAULT 'x,y',\n" +
				"  PRIMARY KEY (`id`),\n" +
				"  KEY `idx_name` (`name`)\n" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8;\n",
			cfg:     mysqlConfig,
			table:   core.ObjectName{"`users`"},
			columns: []string{"`id`", "`name`"},
		},
		{
			name:    "postgres qualified",
			sql:     `CREATE TABLE public."Orders" (id integer, total numeric(10,2), CONSTRAINT pk PRIMARY KEY (id));`,
			cfg:     postgresConfig,
			table:   core.ObjectName{"public", `"Orders"`},
			columns: []string{"id", "total"},
		},
		{
			name:    "if not exists temporary",
			sql:     "CREATE TEMPORARY TABLE IF NOT EXISTS t (a text)",
			table:   core.ObjectName{"t"},
			columns: []string{"a"},
		},
		{
			name:    "keyword column names",
			sql:     "CREATE TABLE t (value int, `key` int, default_x int)",
			cfg:     mysqlConfig,
			table:   core.ObjectName{"t"},
			columns: []string{"value", "`key`", "default_x"},
		},
		{
			name:    "as select",
			sql:     "CREATE TABLE t AS SELECT * FROM u",
			table:   core.ObjectName{"t"},
			columns: nil,
		},
		{
			name:    "empty",
			sql:     "CREATE TABLE t ()",
			table:   core.ObjectName{"t"},
			columns: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseOne(t, tt.sql, tt.cfg)
			ct, ok := stmt.(*core.CreateTable)
			require.True(t, ok, "expected *core.CreateTable, got %T", stmt)
			assert.Equal(t, tt.table, ct.Name)
			assert.Equal(t, tt.columns, ct.Columns)
		})
	}
}

func TestParseInsert(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		cfg     *core.DialectConfig
		table   core.ObjectName
		columns []string
		rows    [][]string
		replace bool
		ignore  bool
	}{
		{
			name:  "extended insert",
			sql:   "INSERT INTO `users` VALUES (1,'Alice',NULL),(2,'O\\'Brien',-3.5);",
			cfg:   mysqlConfig,
			table: core.ObjectName{"`users`"},
			rows: [][]string{
				{"1", "'Alice'", "NULL"},
				{"2", "'O''Brien'", "-3.5"},
			},
		},
		{
			name:    "explicit columns",
			sql:     "INSERT INTO t (a, `b`) VALUES ('x', 'y')",
			cfg:     mysqlConfig,
			table:   core.ObjectName{"t"},
			columns: []string{"a", "`b`"},
			rows:    [][]string{{"'x'", "'y'"}},
		},
		{
			name:   "insert ignore",
			sql:    "INSERT IGNORE INTO t VALUES (1)",
			table:  core.ObjectName{"t"},
			rows:   [][]string{{"1"}},
			ignore: true,
		},
		{
			name:    "replace",
			sql:     "REPLACE INTO t VALUES (1)",
			table:   core.ObjectName{"t"},
			rows:    [][]string{{"1"}},
			replace: true,
		},
		{
			name:  "expressions keep source text",
			sql:   "INSERT INTO t VALUES (NOW(), X'0A', 1 + 2, (3))",
			table: core.ObjectName{"t"},
			rows:  [][]string{{"NOW()", "X'0A'", "1 + 2", "(3)"}},
		},
		{
			name:  "on duplicate key",
			sql:   "INSERT INTO t VALUES (1) ON DUPLICATE KEY UPDATE a = VALUES(a)",
			cfg:   mysqlConfig,
			table: core.ObjectName{"t"},
			rows:  [][]string{{"1"}},
		},
		{
			name:  "insert select",
			sql:   "INSERT INTO t SELECT * FROM u",
			table: core.ObjectName{"t"},
		},
		{
			name:    "sqlite or replace",
			sql:     `INSERT OR REPLACE INTO "t" VALUES ('a')`,
			table:   core.ObjectName{`"t"`},
			rows:    [][]string{{"'a'"}},
			replace: true,
		},
		{
			name:  "generic keeps backslash escapes raw",
			sql:   `INSERT INTO t VALUES ('a\nb')`,
			table: core.ObjectName{"t"},
			rows:  [][]string{{`'a\nb'`}},
		},
		{
			name:  "empty tuple",
			sql:   "INSERT INTO t VALUES ()",
			table: core.ObjectName{"t"},
			rows:  [][]string{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseOne(t, tt.sql, tt.cfg)
			ins, ok := stmt.(*core.Insert)
			require.True(t, ok, "expected *core.Insert, got %T", stmt)
			assert.Equal(t, tt.table, ins.Table)
			assert.Equal(t, tt.columns, ins.Columns)
			assert.Equal(t, tt.rows, ins.Rows)
			assert.Equal(t, tt.replace, ins.Replace)
			assert.Equal(t, tt.ignore, ins.Ignore)
		})
	}
}

func TestParseMultipleStatements(t *testing.T) {
	sql := "LOCK TABLES `t` WRITE;\nINSERT INTO `t` VALUES (1);\nUNLOCK TABLES;"
	stmts, err := ParseStatements(sql, mysqlConfig)
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	assert.Equal(t, &core.Other{Keyword: "LOCK"}, stmts[0])
	assert.IsType(t, &core.Insert{}, stmts[1])
	assert.Equal(t, &core.Other{Keyword: "UNLOCK"}, stmts[2])
}

func TestParseOther(t *testing.T) {
	stmt := parseOne(t, "SET NAMES utf8mb4", nil)
	assert.Equal(t, &core.Other{Keyword: "SET"}, stmt)

	stmt = parseOne(t, "CREATE INDEX i ON t (a)", nil)
	assert.Equal(t, &core.Other{Keyword: "CREATE"}, stmt)
}

func TestParseEmpty(t *testing.T) {
	stmts, err := ParseStatements(" ;\n; ", nil)
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"unterminated string", "INSERT INTO t VALUES ('abc", ErrUnterminatedString},
		{"unbalanced tuple", "INSERT INTO t VALUES (1, 2", ErrUnbalancedParens},
		{"stray paren", "SET a = 1)", ErrUnbalancedParens},
		{"missing table name", "INSERT INTO (a) VALUES (1)", "expected table name"},
		{"truncated create", "CREATE TABLE t (a int", ErrUnbalancedParens},
		{"missing value", "INSERT INTO t VALUES (1,,2)", "expected value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := ParseStatements(tt.sql, nil)
			require.Error(t, err)
			assert.Nil(t, stmts)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseStatements("INSERT INTO t\nVALUES (1,,2)", nil)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
	assert.Equal(t, 11, perr.Pos.Column)
}
