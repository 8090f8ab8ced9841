package parser

import (
	"strings"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/token"
)

// genericConfig is used when no dialect configuration is supplied.
var genericConfig = core.DialectConfig{
	Name: "generic",
	Identifiers: core.IdentifierConfig{
		Quotes: []core.IdentifierQuote{core.DoubleQuote, core.Backtick},
	},
}

// Lexer tokenizes one statement segment.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	config *core.DialectConfig

	errors []error
}

// NewLexer creates a Lexer for the given input. A nil config selects the
// generic rules (double-quote and backtick identifiers, no backslash escapes).
func NewLexer(input string, cfg *core.DialectConfig) *Lexer {
	if cfg == nil {
		cfg = &genericConfig
	}
	l := &Lexer{
		input:  input,
		line:   1,
		config: cfg,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors seen so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
		l.pos = len(l.input)
		return
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEOF() {
		return Token{Type: token.EOF, Pos: pos, End: pos}
	}

	switch l.ch {
	case ',':
		return l.single(pos, token.COMMA)
	case '(':
		return l.single(pos, token.LPAREN)
	case ')':
		return l.single(pos, token.RPAREN)
	case ';':
		return l.single(pos, token.SEMI)
	case '-':
		return l.single(pos, token.MINUS)
	case '+':
		return l.single(pos, token.PLUS)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(pos)
		}
		return l.single(pos, token.DOT)
	case '\'':
		return l.readString(pos, '\'', l.config.BackslashEscapes)
	}

	if closer, ok := l.config.Identifiers.CloserFor(l.ch); ok {
		return l.readQuotedIdentifier(pos, closer)
	}
	if l.ch == '"' {
		// Not an identifier quote in this dialect: a double-quoted string.
		return l.readString(pos, '"', l.config.BackslashEscapes)
	}

	switch {
	case isIdentStart(l.ch):
		if l.peekChar() == '\'' {
			switch l.ch {
			case 'E', 'e':
				if l.config.EscapeStrings {
					l.readChar()
					return l.readString(pos, '\'', true)
				}
			case 'N', 'n':
				l.readChar()
				return l.readString(pos, '\'', l.config.BackslashEscapes)
			case 'X', 'x', 'B', 'b':
				l.readChar()
				return l.readString(pos, '\'', false)
			}
		}
		return l.readWord(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	}

	return l.single(pos, token.OP)
}

// single consumes one byte as a token of the given type.
func (l *Lexer) single(pos Position, t token.TokenType) Token {
	lit := string(l.ch)
	l.readChar()
	return l.finish(pos, t, lit)
}

func (l *Lexer) finish(pos Position, t token.TokenType, lit string) Token {
	return Token{Type: t, Literal: lit, Pos: pos, End: l.currentPos()}
}

func (l *Lexer) errorf(pos Position, msg string) {
	l.errors = append(l.errors, &LexError{Pos: pos, Message: msg})
}

// skipWhitespaceAndComments skips whitespace, -- and /* */ comments, and #
// comments where the dialect has them.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isSpace(l.ch) {
			l.readChar()
		}

		switch {
		case l.ch == '-' && l.peekChar() == '-':
			l.skipLineComment()
		case l.ch == '#' && l.config.HashComments:
			l.skipLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// skipBlockComment skips /* ... */, including MySQL /*! ... */ hints.
// An unterminated comment runs to the end of input.
func (l *Lexer) skipBlockComment() {
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			return
		}
		l.readChar()
	}
}

// readString reads a string literal delimited by quote, starting at the
// opening quote (any prefix byte has already been consumed). Doubled quotes
// are an escape; with escapes set, so are MySQL backslash sequences.
// The literal is the decoded body.
func (l *Lexer) readString(pos Position, quote byte, escapes bool) Token {
	l.readChar() // skip opening quote

	var b strings.Builder
	for {
		if l.atEOF() {
			l.errorf(pos, ErrUnterminatedString)
			return l.finish(pos, token.ILLEGAL, l.input[pos.Offset:])
		}

		switch {
		case l.ch == quote:
			if l.peekChar() == quote {
				b.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return l.finish(pos, token.STRING, b.String())
		case l.ch == '\\' && escapes:
			l.readChar()
			if l.atEOF() {
				continue
			}
			b.WriteString(unescape(l.ch))
			l.readChar()
		default:
			b.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// unescape decodes the byte following a backslash.
func unescape(ch byte) string {
	switch ch {
	case '0':
		return "\x00"
	case 'b':
		return "\b"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case 'Z':
		return "\x1a"
	case '%', '_':
		// Pattern escapes keep their backslash.
		return "\\" + string(ch)
	default:
		return string(ch)
	}
}

// readQuotedIdentifier reads a delimited identifier. The literal keeps its
// delimiters; a doubled closer inside is an escape.
func (l *Lexer) readQuotedIdentifier(pos Position, closer byte) Token {
	l.readChar() // skip opening delimiter

	for {
		if l.atEOF() {
			l.errorf(pos, ErrUnterminatedIdent)
			return l.finish(pos, token.ILLEGAL, l.input[pos.Offset:])
		}
		if l.ch == closer {
			if l.peekChar() == closer {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing delimiter
			return l.finish(pos, token.QIDENT, l.input[pos.Offset:l.pos])
		}
		l.readChar()
	}
}

// readWord reads an unquoted identifier or keyword.
func (l *Lexer) readWord(pos Position) Token {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lit := l.input[pos.Offset:l.pos]
	return l.finish(pos, token.LookupIdent(strings.ToLower(lit)), lit)
}

// readNumber reads a numeric literal (integer, decimal, scientific or 0x hex).
func (l *Lexer) readNumber(pos Position) Token {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // skip '0'
		l.readChar() // skip 'x'
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.finish(pos, token.NUMBER, l.input[pos.Offset:l.pos])
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part (e.g., 1e10, 1E-5)
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-') {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.finish(pos, token.NUMBER, l.input[pos.Offset:l.pos])
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// isIdentStart accepts ASCII letters, underscore and any non-ASCII byte, so
// UTF-8 names pass through intact.
func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

// Tokenize returns all tokens from the input.
func Tokenize(input string, cfg *core.DialectConfig) []Token {
	l := NewLexer(input, cfg)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}
