// Package token defines the token types produced by the dump statement lexer.
//
// The token set is deliberately small: only the keywords that steer the
// CREATE TABLE / INSERT / REPLACE grammar get their own type. Every other word
// is an IDENT, and every other punctuation byte is an OP. The parser recovers
// exact source text for value expressions from token offsets, so nothing is
// lost by lumping operators together.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // bare identifier
	QIDENT // quoted identifier, literal keeps its quote characters
	NUMBER // 123, 45.67, 1e10, 0x1F
	STRING // 'hello', E'x', N'x', X'0A' (literal is the decoded body)

	// Punctuation
	COMMA  // ,
	DOT    // .
	LPAREN // (
	RPAREN // )
	SEMI   // ;
	MINUS  // -
	PLUS   // +
	OP     // any other operator byte

	// Keywords (alphabetical)
	AS
	CREATE
	DEFAULT
	EXISTS
	FALSE
	IF
	IGNORE
	INSERT
	INTO
	NOT
	NULL
	REPLACE
	SELECT
	TABLE
	TEMP
	TEMPORARY
	TRUE
	VALUE
	VALUES
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	QIDENT: "QIDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	COMMA:  ",",
	DOT:    ".",
	LPAREN: "(",
	RPAREN: ")",
	SEMI:   ";",
	MINUS:  "-",
	PLUS:   "+",
	OP:     "OP",

	AS:        "AS",
	CREATE:    "CREATE",
	DEFAULT:   "DEFAULT",
	EXISTS:    "EXISTS",
	FALSE:     "FALSE",
	IF:        "IF",
	IGNORE:    "IGNORE",
	INSERT:    "INSERT",
	INTO:      "INTO",
	NOT:       "NOT",
	NULL:      "NULL",
	REPLACE:   "REPLACE",
	SELECT:    "SELECT",
	TABLE:     "TABLE",
	TEMP:      "TEMP",
	TEMPORARY: "TEMPORARY",
	TRUE:      "TRUE",
	VALUE:     "VALUE",
	VALUES:    "VALUES",
	WITH:      "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"as":        AS,
	"create":    CREATE,
	"default":   DEFAULT,
	"exists":    EXISTS,
	"false":     FALSE,
	"if":        IF,
	"ignore":    IGNORE,
	"insert":    INSERT,
	"into":      INTO,
	"not":       NOT,
	"null":      NULL,
	"replace":   REPLACE,
	"select":    SELECT,
	"table":     TABLE,
	"temp":      TEMP,
	"temporary": TEMPORARY,
	"true":      TRUE,
	"value":     VALUE,
	"values":    VALUES,
	"with":      WITH,
}

// LookupIdent returns the keyword token type for a lowercase word, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AS && t <= WITH
}

// IsWord returns true for tokens that can stand in for an identifier:
// bare and quoted identifiers plus every keyword.
func IsWord(t TokenType) bool {
	return t == IDENT || t == QIDENT || IsKeyword(t)
}

// Token represents a lexical token with its source extent.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position // first byte of the token
	End     Position // byte immediately after the token
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}
