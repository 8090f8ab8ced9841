package mysql

import (
	"errors"
	"io"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
)

// errPartialCreate marks a CREATE TABLE the vitess grammar accepted without
// a column spec (it skips syntax it does not model).
var errPartialCreate = errors.New("create table parsed without column spec")

// parseVitess parses every statement in sql with xwb1989/sqlparser.
func parseVitess(sql string) ([]core.Statement, error) {
	tokens := sqlparser.NewStringTokenizer(sql)

	var stmts []core.Statement
	for {
		stmt, err := sqlparser.ParseNext(tokens)
		if errors.Is(err, io.EOF) {
			return stmts, nil
		}
		if err != nil {
			return nil, err
		}

		converted, err := convert(stmt)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, converted)
	}
}

// convert maps a vitess statement onto the core variants.
func convert(stmt sqlparser.Statement) (core.Statement, error) {
	switch s := stmt.(type) {
	case *sqlparser.DDL:
		if s.Action != sqlparser.CreateStr || s.NewName.IsEmpty() {
			break
		}
		if s.TableSpec == nil {
			return nil, errPartialCreate
		}
		ct := &core.CreateTable{
			Name:    objectName(s.NewName),
			Columns: make([]string, 0, len(s.TableSpec.Columns)),
		}
		for _, col := range s.TableSpec.Columns {
			ct.Columns = append(ct.Columns, col.Name.String())
		}
		return ct, nil

	case *sqlparser.Insert:
		ins := &core.Insert{
			Table:   objectName(s.Table),
			Replace: s.Action == sqlparser.ReplaceStr,
			Ignore:  s.Ignore != "",
		}
		if len(s.Columns) > 0 {
			ins.Columns = make([]string, 0, len(s.Columns))
			for _, col := range s.Columns {
				ins.Columns = append(ins.Columns, col.String())
			}
		}
		if values, ok := s.Rows.(sqlparser.Values); ok {
			ins.Rows = make([][]string, 0, len(values))
			for _, tuple := range values {
				row := make([]string, 0, len(tuple))
				for _, expr := range tuple {
					row = append(row, renderValue(expr))
				}
				ins.Rows = append(ins.Rows, row)
			}
		}
		return ins, nil
	}

	return &core.Other{Keyword: leadingKeyword(sqlparser.String(stmt))}, nil
}

// renderValue renders a literal the way the in-house parser does: strings
// re-quoted with embedded quotes doubled, NULL as NULL, the rest as SQL text.
func renderValue(expr sqlparser.Expr) string {
	switch v := expr.(type) {
	case *sqlparser.SQLVal:
		if v.Type == sqlparser.StrVal {
			return core.QuoteString(string(v.Val))
		}
	case *sqlparser.NullVal:
		return "NULL"
	}
	return sqlparser.String(expr)
}

func objectName(tn sqlparser.TableName) core.ObjectName {
	if tn.Qualifier.IsEmpty() {
		return core.ObjectName{tn.Name.String()}
	}
	return core.ObjectName{tn.Qualifier.String(), tn.Name.String()}
}

func leadingKeyword(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
