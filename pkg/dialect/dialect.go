// Package dialect provides the SQL dialect definitions used to parse dump
// statements.
//
// A Dialect pairs pure configuration (core.DialectConfig) with a parse
// function. Concrete dialects are registered from pkg/dialects/*/ packages;
// the generic dialect is built in and serves as the fallback for unknown names.
package dialect

import (
	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/parser"
)

// ParseFunc parses one statement segment. A dialect's parse function may
// delegate to the in-house parser through Dialect.ParseDefault.
type ParseFunc func(d *Dialect, sql string) ([]core.Statement, error)

// Dialect is a named grammar for dump statements.
type Dialect struct {
	Name        string
	Aliases     []string
	Description string
	Identifiers core.IdentifierConfig

	backslashEscapes bool
	escapeStrings    bool
	hashComments     bool

	parse ParseFunc
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &core.DialectConfig{
		Name:             d.Name,
		Aliases:          d.Aliases,
		Description:      d.Description,
		Identifiers:      d.Identifiers,
		BackslashEscapes: d.backslashEscapes,
		EscapeStrings:    d.escapeStrings,
		HashComments:     d.hashComments,
	}
}

// Parse turns statement text into zero or more parsed statements.
// A non-nil error means the whole text is unusable.
func (d *Dialect) Parse(sql string) ([]core.Statement, error) {
	if d.parse != nil {
		return d.parse(d, sql)
	}
	return d.ParseDefault(sql)
}

// ParseDefault parses with the in-house parser using this dialect's config.
func (d *Dialect) ParseDefault(sql string) ([]core.Statement, error) {
	return parser.ParseStatements(sql, d.Config())
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect starts building a dialect with the given name.
func NewDialect(name string) *Builder {
	return &Builder{dialect: &Dialect{Name: name}}
}

// FromConfig starts building a dialect from pure configuration data.
func FromConfig(cfg *core.DialectConfig) *Builder {
	return &Builder{dialect: &Dialect{
		Name:             cfg.Name,
		Aliases:          append([]string(nil), cfg.Aliases...),
		Description:      cfg.Description,
		Identifiers:      cfg.Identifiers,
		backslashEscapes: cfg.BackslashEscapes,
		escapeStrings:    cfg.EscapeStrings,
		hashComments:     cfg.HashComments,
	}}
}

// Aliases sets additional lookup names.
func (b *Builder) Aliases(aliases ...string) *Builder {
	b.dialect.Aliases = append(b.dialect.Aliases, aliases...)
	return b
}

// Description sets the one-line summary shown in listings.
func (b *Builder) Description(desc string) *Builder {
	b.dialect.Description = desc
	return b
}

// Identifiers sets the accepted identifier quote pairs; the first is canonical.
func (b *Builder) Identifiers(quotes ...core.IdentifierQuote) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{Quotes: quotes}
	return b
}

// BackslashEscapes enables backslash escapes in every string literal.
func (b *Builder) BackslashEscapes() *Builder {
	b.dialect.backslashEscapes = true
	return b
}

// EscapeStrings enables E'...' literals.
func (b *Builder) EscapeStrings() *Builder {
	b.dialect.escapeStrings = true
	return b
}

// HashComments treats '#' as a line comment.
func (b *Builder) HashComments() *Builder {
	b.dialect.hashComments = true
	return b
}

// ParseWith overrides the parse function.
func (b *Builder) ParseWith(fn ParseFunc) *Builder {
	b.dialect.parse = fn
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	if len(b.dialect.Identifiers.Quotes) == 0 {
		b.dialect.Identifiers = core.IdentifierConfig{Quotes: []core.IdentifierQuote{core.DoubleQuote}}
	}
	return b.dialect
}
