package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/token"
)

// parseInsert parses:
//
//	INSERT [LOW_PRIORITY|DELAYED|HIGH_PRIORITY] [IGNORE] [INTO] name [(cols)] VALUES (...), ...
//	REPLACE [LOW_PRIORITY|DELAYED] [INTO] name [(cols)] VALUES (...), ...
//	INSERT OR {REPLACE|IGNORE} INTO ...
//
// INSERT ... SELECT, DEFAULT VALUES and SET forms yield no rows. Trailing
// clauses (ON DUPLICATE KEY UPDATE, ON CONFLICT, RETURNING) are skipped.
func (p *Parser) parseInsert(replace bool) core.Statement {
	stmt := &core.Insert{Replace: replace}
	p.nextToken() // INSERT or REPLACE

	for p.checkWord("low_priority") || p.checkWord("delayed") || p.checkWord("high_priority") {
		p.nextToken()
	}
	if p.checkWord("or") {
		p.nextToken()
		switch {
		case p.match(token.REPLACE):
			stmt.Replace = true
		case p.match(token.IGNORE):
			stmt.Ignore = true
		default:
			// ROLLBACK, ABORT, FAIL
			p.nextToken()
		}
	}
	if p.match(token.IGNORE) {
		stmt.Ignore = true
	}
	p.match(token.INTO)

	stmt.Table = p.parseObjectName()
	if stmt.Table == nil {
		return stmt
	}

	// Postgres target alias
	if p.check(token.AS) && token.IsWord(p.peek.Type) {
		p.nextToken()
		p.nextToken()
	}

	if p.check(token.LPAREN) && !p.checkPeek(token.SELECT) && !p.checkPeek(token.WITH) && !p.checkPeek(token.LPAREN) {
		p.nextToken()
		stmt.Columns = p.parseColumnList()
		if p.failed() {
			return stmt
		}
	}

	if p.match(token.VALUES) || p.match(token.VALUE) {
		stmt.Rows = p.parseRows()
		if p.failed() {
			return stmt
		}
	}

	p.skipToStatementEnd()
	return stmt
}

// parseColumnList parses identifiers after "(" through ")".
func (p *Parser) parseColumnList() []string {
	columns := []string{}
	if p.match(token.RPAREN) {
		return columns
	}
	for {
		if !token.IsWord(p.token.Type) {
			p.addError(fmt.Sprintf(ErrExpectedColumn, describe(p.token)))
			return nil
		}
		col := p.token.Literal
		p.nextToken()
		// Qualified column (t.col): keep the last part.
		for p.check(token.DOT) && token.IsWord(p.peek.Type) {
			p.nextToken()
			col = p.token.Literal
			p.nextToken()
		}
		columns = append(columns, col)

		if p.match(token.COMMA) {
			continue
		}
		p.expect(token.RPAREN)
		return columns
	}
}

// parseRows parses tuple { "," tuple }.
func (p *Parser) parseRows() [][]string {
	var rows [][]string
	for {
		if !p.expect(token.LPAREN) {
			return nil
		}
		row := p.parseTuple()
		if p.failed() {
			return nil
		}
		rows = append(rows, row)

		if p.check(token.COMMA) && p.checkPeek(token.LPAREN) {
			p.nextToken()
			continue
		}
		return rows
	}
}

// parseTuple parses values after "(" through ")".
func (p *Parser) parseTuple() []string {
	row := []string{}
	if p.match(token.RPAREN) {
		return row
	}
	for {
		v, ok := p.parseValue()
		if !ok {
			return nil
		}
		row = append(row, v)

		if p.match(token.COMMA) {
			continue
		}
		p.expect(token.RPAREN)
		return row
	}
}

// parseValue consumes one value expression up to a top-level "," or ")"
// and returns its rendering. A lone quoted string renders as a single-quoted
// literal with embedded quotes doubled, NULL as NULL, and anything else as
// its source text.
func (p *Parser) parseValue() (string, bool) {
	first := p.token
	last := p.token
	n := 0
	depth := 0

loop:
	for {
		switch p.token.Type {
		case token.EOF, token.SEMI:
			p.addError(ErrUnbalancedParens)
			return "", false
		case token.ILLEGAL:
			p.addError(fmt.Sprintf(ErrIllegalToken, p.token.Literal))
			return "", false
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				break loop
			}
			depth--
		case token.COMMA:
			if depth == 0 {
				break loop
			}
		}
		last = p.token
		n++
		p.nextToken()
	}

	if n == 0 {
		p.addError(fmt.Sprintf(ErrExpectedValue, describe(p.token)))
		return "", false
	}
	if n == 1 {
		switch {
		case first.Type == token.NULL:
			return "NULL", true
		case first.Type == token.STRING && p.isPlainString(first):
			return core.QuoteString(first.Literal), true
		}
	}
	return p.source(first, last), true
}

// isPlainString reports whether a STRING token is a character string
// ('x', "x", N'x', E'x') rather than a hex or bit literal.
func (p *Parser) isPlainString(tok Token) bool {
	switch strings.ToLower(p.input[tok.Pos.Offset : tok.Pos.Offset+1]) {
	case "x", "b":
		return false
	}
	return true
}
