// Package parser provides a dialect-aware parser for the statements found in
// SQL dumps.
//
// # Usage
//
//	stmts, err := parser.ParseStatements(text, cfg)
//	if err != nil {
//	    // drop the statement
//	}
//
// Only CREATE TABLE, INSERT and REPLACE are parsed structurally. Any other
// statement becomes a core.Other carrying its leading keyword.
//
// # Grammar Overview
//
//	script        → statement { ";" statement } [";"]
//	statement     → create_table | insert | other
//	create_table  → CREATE [TEMP|TEMPORARY] TABLE [IF NOT EXISTS] name
//	                [ "(" element { "," element } ")" ] { option }
//	insert        → (INSERT [modifier] [IGNORE] | REPLACE [modifier]) [INTO] name
//	                [ "(" column { "," column } ")" ]
//	                ( (VALUES|VALUE) tuple { "," tuple } | query ) { clause }
//	tuple         → "(" [ value { "," value } ] ")"
//	name          → word { "." word }
//
// See parser_create.go and parser_insert.go for the details of each rule.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/token"
)

// Parser parses a statement segment into core statements.
type Parser struct {
	lexer  *Lexer
	input  string
	token  Token // current token
	peek   Token // lookahead token
	peek2  Token // second lookahead token
	errors []error
}

// NewParser creates a new parser for the given input.
func NewParser(sql string, cfg *core.DialectConfig) *Parser {
	p := &Parser{
		lexer: NewLexer(sql, cfg),
		input: sql,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// ParseStatements parses every statement in sql. Any error fails the whole
// input; callers drop the segment.
func ParseStatements(sql string, cfg *core.DialectConfig) ([]core.Statement, error) {
	p := NewParser(sql, cfg)
	stmts := p.parseScript()
	if errs := p.lexer.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmts, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return false
}

// checkWord reports whether the current token is the bare word w
// (case-insensitive). Quoted identifiers never match.
func (p *Parser) checkWord(w string) bool {
	return p.token.Type != token.QIDENT && token.IsWord(p.token.Type) && strings.EqualFold(p.token.Literal, w)
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0 || len(p.lexer.Errors()) > 0
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.IDENT, token.QIDENT, token.NUMBER:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		if token.IsKeyword(tok.Type) {
			return tok.Type.String()
		}
		return fmt.Sprintf("%q", tok.Literal)
	}
}

// source returns the input text from the start of first to the end of last.
func (p *Parser) source(first, last Token) string {
	return p.input[first.Pos.Offset:last.End.Offset]
}

// ---------- Statements ----------

// parseScript parses statements separated by semicolons.
func (p *Parser) parseScript() []core.Statement {
	var stmts []core.Statement
	for {
		for p.match(token.SEMI) {
		}
		if p.check(token.EOF) || p.failed() {
			return stmts
		}

		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmts = append(stmts, stmt)

		if !p.check(token.EOF) && !p.expect(token.SEMI) {
			return nil
		}
	}
}

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() core.Statement {
	switch p.token.Type {
	case token.CREATE:
		if p.checkPeek(token.TABLE) ||
			(p.checkPeek(token.TEMP) || p.checkPeek(token.TEMPORARY)) && p.peek2.Type == token.TABLE {
			return p.parseCreateTable()
		}
	case token.INSERT:
		return p.parseInsert(false)
	case token.REPLACE:
		return p.parseInsert(true)
	}
	return p.parseOther()
}

// parseOther consumes an unhandled statement.
func (p *Parser) parseOther() core.Statement {
	stmt := &core.Other{Keyword: strings.ToUpper(p.token.Literal)}
	p.skipToStatementEnd()
	return stmt
}

// skipToStatementEnd consumes tokens up to the next top-level semicolon or
// EOF, checking that parentheses balance.
func (p *Parser) skipToStatementEnd() {
	depth := 0
	for {
		switch p.token.Type {
		case token.EOF:
			if depth > 0 {
				p.addError(ErrUnbalancedParens)
			}
			return
		case token.SEMI:
			if depth == 0 {
				return
			}
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				p.addError(ErrUnbalancedParens)
				return
			}
			depth--
		case token.ILLEGAL:
			p.addError(fmt.Sprintf(ErrIllegalToken, p.token.Literal))
			return
		}
		p.nextToken()
	}
}

// parseObjectName parses a dotted name; parts keep their quotes.
func (p *Parser) parseObjectName() core.ObjectName {
	if !token.IsWord(p.token.Type) {
		p.addError(fmt.Sprintf(ErrExpectedName, describe(p.token)))
		return nil
	}
	name := core.ObjectName{p.token.Literal}
	p.nextToken()
	for p.check(token.DOT) && token.IsWord(p.peek.Type) {
		p.nextToken()
		name = append(name, p.token.Literal)
		p.nextToken()
	}
	return name
}
