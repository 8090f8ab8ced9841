package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/token"
)

var mysqlConfig = &core.DialectConfig{
	Name:             "mysql",
	Identifiers:      core.IdentifierConfig{Quotes: []core.IdentifierQuote{core.Backtick}},
	BackslashEscapes: true,
	HashComments:     true,
}

var postgresConfig = &core.DialectConfig{
	Name:          "postgres",
	Identifiers:   core.IdentifierConfig{Quotes: []core.IdentifierQuote{core.DoubleQuote}},
	EscapeStrings: true,
}

func types(toks []Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	toks := Tokenize("INSERT INTO `t` VALUES (1,'a');", mysqlConfig)

	assert.Equal(t, []token.TokenType{
		token.INSERT, token.INTO, token.QIDENT, token.VALUES,
		token.LPAREN, token.NUMBER, token.COMMA, token.STRING, token.RPAREN,
		token.SEMI, token.EOF,
	}, types(toks))
	assert.Equal(t, "`t`", toks[2].Literal)
	assert.Equal(t, "a", toks[7].Literal)
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cfg   *core.DialectConfig
		want  string
	}{
		{"doubled quote", `'it''s'`, nil, "it's"},
		{"mysql backslash quote", `'it\'s'`, mysqlConfig, "it's"},
		{"mysql newline", `'a\nb'`, mysqlConfig, "a\nb"},
		{"mysql backslash", `'a\\b'`, mysqlConfig, `a\b`},
		{"mysql pattern escape kept", `'50\%'`, mysqlConfig, `50\%`},
		{"generic keeps backslash", `'a\nb'`, nil, `a\nb`},
		{"postgres escape string", `E'a\tb'`, postgresConfig, "a\tb"},
		{"postgres plain string", `'a\tb'`, postgresConfig, `a\tb`},
		{"national", `N'abc'`, nil, "abc"},
		{"mysql double-quoted string", `"abc"`, mysqlConfig, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.input, tt.cfg)
			require.Len(t, toks, 2)
			assert.Equal(t, token.STRING, toks[0].Type)
			assert.Equal(t, tt.want, toks[0].Literal)
		})
	}
}

func TestLexerQuotedIdentifiers(t *testing.T) {
	sqlite := &core.DialectConfig{
		Identifiers: core.IdentifierConfig{Quotes: []core.IdentifierQuote{core.DoubleQuote, core.Backtick, core.Bracket}},
	}
	toks := Tokenize("\"a\"\"b\" `c` [d e]", sqlite)

	require.Len(t, toks, 4)
	assert.Equal(t, []token.TokenType{token.QIDENT, token.QIDENT, token.QIDENT, token.EOF}, types(toks))
	assert.Equal(t, `"a""b"`, toks[0].Literal)
	assert.Equal(t, "`c`", toks[1].Literal)
	assert.Equal(t, "[d e]", toks[2].Literal)
}

func TestLexerSkipsComments(t *testing.T) {
	input := "-- header\n/*!40101 SET NAMES utf8 */ # hash\nSELECT 1"
	toks := Tokenize(input, mysqlConfig)

	assert.Equal(t, []token.TokenType{token.SELECT, token.NUMBER, token.EOF}, types(toks))
	assert.Equal(t, 3, toks[0].Pos.Line)
}

func TestLexerNumbers(t *testing.T) {
	for _, in := range []string{"42", "3.14", "1e10", "2.5E-3", "0x1F", ".5"} {
		t.Run(in, func(t *testing.T) {
			toks := Tokenize(in, nil)
			require.Len(t, toks, 2)
			assert.Equal(t, token.NUMBER, toks[0].Type)
			assert.Equal(t, in, toks[0].Literal)
		})
	}
}

func TestLexerUnterminated(t *testing.T) {
	l := NewLexer("'abc", nil)
	tok := l.NextToken()

	assert.Equal(t, token.ILLEGAL, tok.Type)
	require.Len(t, l.Errors(), 1)
	assert.Contains(t, l.Errors()[0].Error(), ErrUnterminatedString)
}

func TestLexerPositions(t *testing.T) {
	toks := Tokenize("a\n  bc", nil)

	require.Len(t, toks, 3)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, toks[1].Pos)
	assert.Equal(t, 6, toks[1].End.Offset)
}

func TestLexerUTF8Identifier(t *testing.T) {
	toks := Tokenize("café_ñ", nil)

	require.Len(t, toks, 2)
	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, "café_ñ", toks[0].Literal)
}
