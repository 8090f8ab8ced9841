package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

func TestRegistered(t *testing.T) {
	for _, name := range []string{"mysql", "MySQL", "mariadb"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.Same(t, MySQL, d)
	}
}

func TestParseMysqldumpInsert(t *testing.T) {
	stmts, err := MySQL.Parse("INSERT INTO `users` VALUES (1,'Alice',NULL),(2,'it\\'s',-5);\n")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	ins, ok := stmts[0].(*core.Insert)
	require.True(t, ok)
	require.Len(t, ins.Table, 1)
	assert.Equal(t, "users", trimTicks(ins.Table[0]))
	assert.Nil(t, ins.Columns)
	assert.Equal(t, [][]string{
		{"1", "'Alice'", "NULL"},
		{"2", "'it''s'", "-5"},
	}, ins.Rows)
	assert.False(t, ins.Replace)
}

func TestParseReplaceAndIgnore(t *testing.T) {
	stmts, err := MySQL.Parse("REPLACE INTO t (a) VALUES ('x')")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	ins := stmts[0].(*core.Insert)
	assert.True(t, ins.Replace)
	assert.Len(t, ins.Columns, 1)

	stmts, err = MySQL.Parse("INSERT IGNORE INTO t VALUES (1)")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.True(t, stmts[0].(*core.Insert).Ignore)
}

func TestParseCreateTable(t *testing.T) {
	sql := "CREATE TABLE `users` (\n" +
		"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
		"  `email` varchar(255) NOT NULL,\n" +
		"  PRIMARY KEY (`id`),\n" +
		"  UNIQUE KEY `email` (`email`)\n" +
		") ENGINE=InnoDB AUTO_INCREMENT=3 DEFAULT CHARSET=utf8mb4;"

	stmts, err := MySQL.Parse(sql)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	ct, ok := stmts[0].(*core.CreateTable)
	require.True(t, ok)
	require.Len(t, ct.Name, 1)
	assert.Equal(t, "users", trimTicks(ct.Name[0]))
	require.Len(t, ct.Columns, 2)
	assert.Equal(t, "id", trimTicks(ct.Columns[0]))
	assert.Equal(t, "email", trimTicks(ct.Columns[1]))
}

func TestFallbackOnVitessFailure(t *testing.T) {
	// The :: cast is outside the vitess grammar.
	sql := "INSERT INTO `t` VALUES (1, 'a'::text)"
	_, err := parseVitess(sql)
	require.Error(t, err)

	stmts, err := MySQL.Parse(sql)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	ins, ok := stmts[0].(*core.Insert)
	require.True(t, ok)
	assert.Equal(t, core.ObjectName{"`t`"}, ins.Table)
	assert.Equal(t, [][]string{{"1", "'a'::text"}}, ins.Rows)
}

func TestConvertOther(t *testing.T) {
	stmts, err := MySQL.Parse("SET NAMES utf8mb4")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, core.KindOther, stmts[0].Kind())
}

func TestParseFailure(t *testing.T) {
	_, err := MySQL.Parse("INSERT INTO t VALUES ('unterminated")
	assert.Error(t, err)
}

func trimTicks(s string) string {
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}
	return s
}
