// Package parser turns ChartFlow source text into an ast.Program.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BuchardsVault/ChartFlow/ast"
	"github.com/BuchardsVault/ChartFlow/customerrors"
)

type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a whole program. Errors wrap customerrors.ErrSyntax.
func Parse(input string) (*ast.Program, error) {
	p := &Parser{tokens: NewLexer(input).Tokenize()}
	return p.parseProgram()
}

// ParseReader reads r fully and parses it.
func ParseReader(r io.Reader) (*ast.Program, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	return Parse(string(src))
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for {
		p.skipNewlines()
		if p.current().Type == EOF {
			return program, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)

		switch tok := p.current(); tok.Type {
		case NEWLINE, EOF:
		default:
			return nil, p.errorf(tok, "expected end of statement, found %s", describe(tok))
		}
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.current()
	if tok.Type != IDENT {
		return nil, p.errorf(tok, "expected statement, found %s", describe(tok))
	}
	pos := ast.Pos{Line: tok.Line, Column: tok.Column}

	switch strings.ToLower(tok.Text) {
	case kwLet:
		p.next()
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(EQUALS); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.LetStmt{Pos: pos, Name: name.Text, Expr: expr}, nil

	case kwClear:
		p.next()
		stmt := &ast.ClearStmt{Pos: pos}
		for p.current().Type == IDENT {
			stmt.Vars = append(stmt.Vars, p.next().Text)
			if p.current().Type != COMMA {
				break
			}
			p.next()
		}
		return stmt, nil

	case kwShow:
		p.next()
		asset, date, err := p.parseAssetAndDate()
		if err != nil {
			return nil, err
		}
		return &ast.ShowStmt{Pos: pos, Asset: asset, Date: date}, nil

	case kwChart:
		p.next()
		asset, date, err := p.parseAssetAndDate()
		if err != nil {
			return nil, err
		}
		stmt := &ast.ChartStmt{Pos: pos, Asset: asset, Date: date}
		if p.isKeyword(kwAs) {
			p.next()
			ctype, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}
			stmt.ChartType = strings.ToLower(ctype.Text)
		}
		if p.isKeyword(kwWith) {
			p.next()
			if stmt.Options, err = p.parseOptions(); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	}

	return nil, p.errorf(tok, "unknown statement %q", tok.Text)
}

func (p *Parser) parseAssetAndDate() (ast.AssetSpec, ast.DateClause, error) {
	asset, err := p.parseAsset()
	if err != nil {
		return nil, nil, err
	}
	date, err := p.parseDateClause()
	if err != nil {
		return nil, nil, err
	}
	return asset, date, nil
}

func (p *Parser) parseAsset() (ast.AssetSpec, error) {
	tok := p.current()
	switch tok.Type {
	case STRING:
		p.next()
		return &ast.SingleSymbol{Symbol: tok.Text}, nil
	case IDENT:
		p.next()
		return &ast.VariableRef{Name: tok.Text}, nil
	case LSQUARE:
		p.next()
		list := &ast.SymbolList{}
		for p.current().Type != RSQUARE {
			sym := p.current()
			if sym.Type != STRING && sym.Type != IDENT {
				return nil, p.errorf(sym, "expected symbol, found %s", describe(sym))
			}
			list.Symbols = append(list.Symbols, p.next().Text)
			if p.current().Type == COMMA {
				p.next()
			} else if p.current().Type != RSQUARE {
				return nil, p.errorf(p.current(), "expected ',' or ']', found %s", describe(p.current()))
			}
		}
		p.next()
		return list, nil
	}
	return nil, p.errorf(tok, "expected asset, found %s", describe(tok))
}

// parseDateClause accepts:
//
//	over last 5 days
//	over 2024
//	over 2024-01-01 to 2024-06-30
//	from 2024-01-01 to 2024-06-30
func (p *Parser) parseDateClause() (ast.DateClause, error) {
	if p.isKeyword(kwFrom) {
		p.next()
		return p.parseRange()
	}
	if !p.isKeyword(kwOver) {
		return nil, p.errorf(p.current(), "expected 'over' or 'from', found %s", describe(p.current()))
	}
	p.next()

	tok := p.current()
	switch {
	case p.isKeyword(kwLast):
		p.next()
		amount, err := p.expect(NUMBER)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(amount.Text)
		if err != nil {
			return nil, p.errorf(amount, "invalid amount %q", amount.Text)
		}
		unit, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.RelativeAmount{Amount: n, Unit: unit.Text}, nil
	case tok.Type == NUMBER:
		p.next()
		year, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, p.errorf(tok, "invalid year %q", tok.Text)
		}
		return &ast.CalendarYear{Year: year}, nil
	case tok.Type == DATE || tok.Type == STRING:
		return p.parseRange()
	}
	return nil, p.errorf(tok, "expected date clause, found %s", describe(tok))
}

func (p *Parser) parseRange() (ast.DateClause, error) {
	start, err := p.parseDate()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword(kwTo) {
		return nil, p.errorf(p.current(), "expected 'to', found %s", describe(p.current()))
	}
	p.next()
	end, err := p.parseDate()
	if err != nil {
		return nil, err
	}
	return &ast.ExplicitRange{Start: start, End: end}, nil
}

func (p *Parser) parseDate() (string, error) {
	tok := p.current()
	switch tok.Type {
	case DATE:
		p.next()
		return tok.Text, nil
	case STRING:
		p.next()
		return strings.Trim(tok.Text, `"`), nil
	}
	return "", p.errorf(tok, "expected date, found %s", describe(tok))
}

func (p *Parser) parseOptions() ([]ast.ChartOption, error) {
	var options []ast.ChartOption
	for {
		key, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(EQUALS); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		options = append(options, ast.ChartOption{Key: strings.ToLower(key.Text), Value: value})

		if p.current().Type != COMMA {
			return options, nil
		}
		p.next()
	}
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	tok := p.current()
	switch tok.Type {
	case STRING, NUMBER, DATE:
		p.next()
		return &ast.Literal{Token: tok.Text}, nil
	case IDENT:
		p.next()
		if p.current().Type != LPAREN {
			return &ast.Literal{Token: tok.Text}, nil
		}
		p.next()
		args, err := p.parseExpressionList(RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Name: tok.Text, Args: args}, nil
	case LSQUARE:
		p.next()
		elems, err := p.parseExpressionList(RSQUARE)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Elements: elems}, nil
	}
	return nil, p.errorf(tok, "expected expression, found %s", describe(tok))
}

// parseExpressionList parses comma separated expressions up to and
// including the closing token.
func (p *Parser) parseExpressionList(closing TokenType) ([]ast.Expression, error) {
	exprs := []ast.Expression{}
	for p.current().Type != closing {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		switch tok := p.current(); tok.Type {
		case COMMA:
			p.next()
		case closing:
		default:
			return nil, p.errorf(tok, "expected ',' or %s, found %s", closing, describe(tok))
		}
	}
	p.next()
	return exprs, nil
}

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s, found %s", tt, describe(tok))
	}
	return p.next(), nil
}

func (p *Parser) isKeyword(kw string) bool {
	tok := p.current()
	return tok.Type == IDENT && strings.EqualFold(tok.Text, kw)
}

func (p *Parser) skipNewlines() {
	for p.current().Type == NEWLINE {
		p.next()
	}
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return fmt.Errorf("%w at line %d, column %d: %s",
		customerrors.ErrSyntax, tok.Line, tok.Column, fmt.Sprintf(format, args...))
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF, NEWLINE:
		return tok.Type.String()
	}
	return fmt.Sprintf("%q", tok.Text)
}
