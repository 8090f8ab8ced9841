package core

import "strings"

// StatementKind identifies a Statement variant.
type StatementKind int

// Statement kinds.
const (
	KindOther StatementKind = iota
	KindCreateTable
	KindInsert
)

// String returns the string representation of StatementKind.
func (k StatementKind) String() string {
	switch k {
	case KindCreateTable:
		return "create_table"
	case KindInsert:
		return "insert"
	default:
		return "other"
	}
}

// Statement is one parsed statement of a dump.
// The set of implementations is closed: *CreateTable, *Insert and *Other.
type Statement interface {
	Kind() StatementKind
	stmtNode() // Marker method to close the variant set
}

// ObjectName is a possibly qualified name. Parts keep the quote characters
// they had in the source ("`db`", "users").
type ObjectName []string

// String joins the parts with dots.
func (n ObjectName) String() string {
	return strings.Join(n, ".")
}

// CreateTable is CREATE TABLE name (columns...).
type CreateTable struct {
	Name        ObjectName
	Columns     []string // column names in declaration order, quotes retained
	IfNotExists bool
	Temporary   bool
}

func (*CreateTable) stmtNode() {}

// Kind implements Statement.
func (*CreateTable) Kind() StatementKind { return KindCreateTable }

// Insert is INSERT or REPLACE with an optional column list and VALUES rows.
// Each value is the literal's textual rendering: single-quoted strings are
// re-quoted with embedded quotes doubled, NULL is "NULL", anything else is
// its source text.
type Insert struct {
	Table   ObjectName
	Columns []string // nil when the statement lists no columns
	Rows    [][]string
	Replace bool
	Ignore  bool
}

func (*Insert) stmtNode() {}

// Kind implements Statement.
func (*Insert) Kind() StatementKind { return KindInsert }

// Other is any statement outside the handled set.
type Other struct {
	Keyword string // leading keyword, upper-cased ("SET", "LOCK", ...)
}

func (*Other) stmtNode() {}

// Kind implements Statement.
func (*Other) Kind() StatementKind { return KindOther }

// QuoteString renders a string value as a single-quoted SQL literal,
// doubling embedded single quotes.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
