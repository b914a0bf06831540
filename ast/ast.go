// Package ast defines the parsed form of a ChartFlow program.
//
// Statement, Expression, DateClause and AssetSpec are closed sets: each is
// an interface with an unexported marker method, so only the variants in
// this package satisfy it.
package ast

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) Position() Pos { return p }

// Program is an ordered list of statements.
type Program struct {
	Statements []Statement
}

type Statement interface {
	Position() Pos
	statementNode()
}

// LetStmt binds Name to the value of Expr.
type LetStmt struct {
	Pos
	Name string
	Expr Expression
}

// ClearStmt removes Vars, or every non-builtin binding when Vars is empty.
type ClearStmt struct {
	Pos
	Vars []string
}

// ShowStmt prints price history tables.
type ShowStmt struct {
	Pos
	Asset AssetSpec
	Date  DateClause
}

// ChartStmt plots price history. ChartType is empty when the program
// omits the "as" clause.
type ChartStmt struct {
	Pos
	Asset     AssetSpec
	Date      DateClause
	ChartType string
	Options   []ChartOption
}

type ChartOption struct {
	Key   string
	Value Expression
}

func (*LetStmt) statementNode()   {}
func (*ClearStmt) statementNode() {}
func (*ShowStmt) statementNode()  {}
func (*ChartStmt) statementNode() {}

type Expression interface {
	expressionNode()
}

// Literal holds the raw token text: a quoted string (quotes included), a
// bare numeral or a bare identifier.
type Literal struct {
	Token string
}

type ListLiteral struct {
	Elements []Expression
}

type FunctionCall struct {
	Name string
	Args []Expression
}

func (*Literal) expressionNode()      {}
func (*ListLiteral) expressionNode()  {}
func (*FunctionCall) expressionNode() {}

type DateClause interface {
	dateClause()
}

// ExplicitRange carries already formatted YYYY-MM-DD bounds.
type ExplicitRange struct {
	Start string
	End   string
}

type CalendarYear struct {
	Year int
}

// RelativeAmount is "last <Amount> <Unit>". Unit is kept as written.
type RelativeAmount struct {
	Amount int
	Unit   string
}

func (*ExplicitRange) dateClause()  {}
func (*CalendarYear) dateClause()   {}
func (*RelativeAmount) dateClause() {}

type AssetSpec interface {
	assetSpec()
}

type VariableRef struct {
	Name string
}

// SingleSymbol and SymbolList keep the raw tokens, quotes included.
type SingleSymbol struct {
	Symbol string
}

type SymbolList struct {
	Symbols []string
}

func (*VariableRef) assetSpec()  {}
func (*SingleSymbol) assetSpec() {}
func (*SymbolList) assetSpec()   {}
