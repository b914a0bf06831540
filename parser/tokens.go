package parser

import "fmt"

// TokenType identifies a lexical token.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	NEWLINE // \n or ;

	IDENT  // let, syms, AAPL
	STRING // "AAPL", quotes kept
	NUMBER // 2024
	DATE   // 2024-01-31

	LSQUARE // [
	RSQUARE // ]
	LPAREN  // (
	RPAREN  // )
	COMMA   // ,
	EQUALS  // =
)

var tokenNames = map[TokenType]string{
	EOF:     "end of input",
	ILLEGAL: "illegal token",
	NEWLINE: "end of statement",
	IDENT:   "identifier",
	STRING:  "string",
	NUMBER:  "number",
	DATE:    "date",
	LSQUARE: "'['",
	RSQUARE: "']'",
	LPAREN:  "'('",
	RPAREN:  "')'",
	COMMA:   "','",
	EQUALS:  "'='",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexeme with its source position.
type Token struct {
	Type   TokenType
	Text   string
	Line   int
	Column int
}

// Keywords are matched case-insensitively on IDENT tokens; they are not
// reserved, so a variable may still be named "last".
const (
	kwLet   = "let"
	kwClear = "clear"
	kwShow  = "show"
	kwChart = "chart"
	kwOver  = "over"
	kwFrom  = "from"
	kwTo    = "to"
	kwLast  = "last"
	kwAs    = "as"
	kwWith  = "with"
)
