package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer turns ChartFlow source into tokens.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// Tokenize returns every token up to and including EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func (l *Lexer) Next() Token {
	l.skipSpaceAndComments()

	line, col := l.line, l.column
	if l.pos >= len(l.input) {
		return Token{Type: EOF, Line: line, Column: col}
	}

	r := l.peek()
	switch {
	case r == '\n' || r == ';':
		l.advance()
		return Token{Type: NEWLINE, Text: string(r), Line: line, Column: col}
	case r == '"':
		return l.readString(line, col)
	case isDigit(r):
		return l.readNumberOrDate(line, col)
	case isIdentStart(r):
		start := l.pos
		for l.pos < len(l.input) && isIdentPart(l.peek()) {
			l.advance()
		}
		return Token{Type: IDENT, Text: l.input[start:l.pos], Line: line, Column: col}
	}

	l.advance()
	tok := Token{Text: string(r), Line: line, Column: col}
	switch r {
	case '[':
		tok.Type = LSQUARE
	case ']':
		tok.Type = RSQUARE
	case '(':
		tok.Type = LPAREN
	case ')':
		tok.Type = RPAREN
	case ',':
		tok.Type = COMMA
	case '=':
		tok.Type = EQUALS
	default:
		tok.Type = ILLEGAL
	}
	return tok
}

func (l *Lexer) readString(line, col int) Token {
	start := l.pos
	l.advance() // opening quote
	for l.pos < len(l.input) {
		r := l.peek()
		if r == '\n' {
			break
		}
		l.advance()
		if r == '"' {
			return Token{Type: STRING, Text: l.input[start:l.pos], Line: line, Column: col}
		}
	}
	return Token{Type: ILLEGAL, Text: l.input[start:l.pos], Line: line, Column: col}
}

// readNumberOrDate reads 2024 as NUMBER and 2024-01-31 as DATE.
func (l *Lexer) readNumberOrDate(line, col int) Token {
	start := l.pos
	l.skipDigits()
	if l.pos-start == 4 && l.isDatePart() {
		l.advance()
		l.skipDigits()
		if l.isDatePart() {
			l.advance()
			l.skipDigits()
			return Token{Type: DATE, Text: l.input[start:l.pos], Line: line, Column: col}
		}
		return Token{Type: ILLEGAL, Text: l.input[start:l.pos], Line: line, Column: col}
	}
	return Token{Type: NUMBER, Text: l.input[start:l.pos], Line: line, Column: col}
}

func (l *Lexer) isDatePart() bool {
	if l.pos+1 >= len(l.input) || l.input[l.pos] != '-' {
		return false
	}
	return isDigit(rune(l.input[l.pos+1]))
}

func (l *Lexer) skipDigits() {
	for l.pos < len(l.input) && isDigit(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		r := l.peek()
		switch {
		case r == '#' || strings.HasPrefix(l.input[l.pos:], "//"):
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case r != '\n' && unicode.IsSpace(r):
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' || r == '^' }

// Tickers such as BRK.B or ^GSPC lex as identifiers.
func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}
