package ast

// IntLit is an integer literal.
type IntLit struct {
	base
	Value int64
	Raw   string // original spelling, preserved for diagnostics/printers
}

func (*IntLit) exprNode()          {}
func (*IntLit) ExprKind() ExprKind { return ExprIntLit }

// NumberLit is a floating-point literal.
type NumberLit struct {
	base
	Value float64
	Raw   string
}

func (*NumberLit) exprNode()          {}
func (*NumberLit) ExprKind() ExprKind { return ExprNumberLit }

// StringLit is a simple (non-interpolated) string literal.
type StringLit struct {
	base
	Value string
}

func (*StringLit) exprNode()          {}
func (*StringLit) ExprKind() ExprKind { return ExprStringLit }

// InterpStringExpr is an interpolated string: a sequence of literal
// segments interleaved with embedded expressions, reconstructed from the
// lexer's StringStart/StringMid/StringEnd token stream (spec §4.3).
type InterpStringExpr struct {
	base
	Segments []string // len(Segments) == len(Exprs)+1
	Exprs    []Expr
}

func (*InterpStringExpr) exprNode()          {}
func (*InterpStringExpr) ExprKind() ExprKind { return ExprInterpString }

// BoolLit is a boolean literal.
type BoolLit struct {
	base
	Value bool
}

func (*BoolLit) exprNode()          {}
func (*BoolLit) ExprKind() ExprKind { return ExprBoolLit }

// NullLit is the "null"/"nil" literal.
type NullLit struct{ base }

func (*NullLit) exprNode()          {}
func (*NullLit) ExprKind() ExprKind { return ExprNullLit }

// UnitLit is the unit/void value literal, e.g. "()".
type UnitLit struct{ base }

func (*UnitLit) exprNode()          {}
func (*UnitLit) ExprKind() ExprKind { return ExprUnitLit }

// Ident is a bare name reference.
type Ident struct {
	base
	Name string
}

func (*Ident) exprNode()          {}
func (*Ident) ExprKind() ExprKind { return ExprIdent }

// SelfExpr is "self"/"Self".
type SelfExpr struct{ base }

func (*SelfExpr) exprNode()          {}
func (*SelfExpr) ExprKind() ExprKind { return ExprSelf }

// SuperExpr is "super"/"inherited".
type SuperExpr struct{ base }

func (*SuperExpr) exprNode()          {}
func (*SuperExpr) ExprKind() ExprKind { return ExprSuper }
