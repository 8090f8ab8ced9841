package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/token"
)

// constraintWords open a table element that is not a column definition.
var constraintWords = map[string]bool{
	"primary":    true,
	"key":        true,
	"index":      true,
	"unique":     true,
	"constraint": true,
	"foreign":    true,
	"check":      true,
	"fulltext":   true,
	"spatial":    true,
	"exclude":    true,
	"like":       true,
	"period":     true,
}

// parseCreateTable parses:
//
//	CREATE [TEMP|TEMPORARY] TABLE [IF NOT EXISTS] name [( element, ... )] options...
//
// CREATE TABLE ... AS SELECT and CREATE TABLE ... LIKE yield no columns.
func (p *Parser) parseCreateTable() core.Statement {
	stmt := &core.CreateTable{}

	p.expect(token.CREATE)
	if p.match(token.TEMP) || p.match(token.TEMPORARY) {
		stmt.Temporary = true
	}
	if !p.expect(token.TABLE) {
		return stmt
	}
	if p.check(token.IF) && p.checkPeek(token.NOT) && p.peek2.Type == token.EXISTS {
		p.nextToken()
		p.nextToken()
		p.nextToken()
		stmt.IfNotExists = true
	}

	stmt.Name = p.parseObjectName()
	if stmt.Name == nil {
		return stmt
	}

	if p.match(token.LPAREN) {
		stmt.Columns = p.parseTableElements()
	}

	p.skipToStatementEnd()
	return stmt
}

// parseTableElements parses the element list after "(" through ")".
func (p *Parser) parseTableElements() []string {
	columns := []string{}
	if p.match(token.RPAREN) {
		return columns
	}

	for {
		switch {
		case p.token.Type == token.QIDENT:
			columns = append(columns, p.token.Literal)
		case token.IsWord(p.token.Type):
			if !constraintWords[strings.ToLower(p.token.Literal)] {
				columns = append(columns, p.token.Literal)
			}
		default:
			p.addError(fmt.Sprintf(ErrExpectedColumn, describe(p.token)))
			return nil
		}

		if !p.skipElement() {
			return nil
		}
		if p.match(token.COMMA) {
			continue
		}
		p.expect(token.RPAREN)
		return columns
	}
}

// skipElement consumes one element up to a top-level "," or ")".
func (p *Parser) skipElement() bool {
	depth := 0
	for {
		switch p.token.Type {
		case token.EOF, token.SEMI:
			p.addError(ErrUnbalancedParens)
			return false
		case token.ILLEGAL:
			p.addError(fmt.Sprintf(ErrIllegalToken, p.token.Literal))
			return false
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return true
			}
			depth--
		case token.COMMA:
			if depth == 0 {
				return true
			}
		}
		p.nextToken()
	}
}
