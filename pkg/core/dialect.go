package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data; the parse function lives in pkg/dialect.Dialect.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Aliases are extra lookup names ("postgresql" for postgres)
	Aliases []string

	// Description is a one-line summary for listings
	Description string

	// Identifiers defines quoting rules
	Identifiers IdentifierConfig

	// BackslashEscapes enables MySQL-style \x escapes inside string literals.
	BackslashEscapes bool

	// EscapeStrings enables PostgreSQL E'...' literals (backslash escapes
	// inside that literal only).
	EscapeStrings bool

	// HashComments treats '#' as a line comment opener (MySQL).
	HashComments bool
}

// IdentifierQuote is one pair of identifier delimiters.
type IdentifierQuote struct {
	Open  byte
	Close byte
}

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	// Quotes lists accepted delimiter pairs; the first is canonical.
	Quotes []IdentifierQuote
}

// CloserFor returns the closing delimiter for an opening byte, if the byte
// opens a quoted identifier in this dialect.
func (c IdentifierConfig) CloserFor(open byte) (byte, bool) {
	for _, q := range c.Quotes {
		if q.Open == open {
			return q.Close, true
		}
	}
	return 0, false
}

// Canonical returns the canonical quote pair, defaulting to double quotes.
func (c IdentifierConfig) Canonical() IdentifierQuote {
	if len(c.Quotes) == 0 {
		return IdentifierQuote{Open: '"', Close: '"'}
	}
	return c.Quotes[0]
}

// Common quote pairs.
var (
	DoubleQuote = IdentifierQuote{Open: '"', Close: '"'}
	Backtick    = IdentifierQuote{Open: '`', Close: '`'}
	Bracket     = IdentifierQuote{Open: '[', Close: ']'}
)
