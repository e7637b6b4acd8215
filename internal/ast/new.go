package ast

import "github.com/splanck/vipc/internal/source"

// Constructors for every concrete node a parser builds. base is an
// unexported embedded type (see node.go's package doc for why), so a
// parser in another package cannot set a node's Loc via a composite
// literal; these constructors are the one place that does it, keeping
// every dialect parser's node-building code uniform.

func NewModuleDecl(loc source.Loc, name string, decls []Decl) *ModuleDecl {
	return &ModuleDecl{base: base{At: loc}, Name: name, Decls: decls}
}

func NewImportDecl(loc source.Loc, path, alias string) *ImportDecl {
	return &ImportDecl{base: base{At: loc}, Path: path, Alias: alias}
}

func NewNamespaceDecl(loc source.Loc, path []string, decls []Decl) *NamespaceDecl {
	return &NamespaceDecl{base: base{At: loc}, Path: path, Decls: decls}
}

func NewFunctionDecl(loc source.Loc, name string, params []Param, ret TypeNode, body *BlockStmt) *FunctionDecl {
	return &FunctionDecl{base: base{At: loc}, Name: name, Params: params, Ret: ret, Body: body}
}

func NewMethodDecl(loc source.Loc, name string, params []Param, ret TypeNode, body *BlockStmt, vis Visibility) *MethodDecl {
	return &MethodDecl{base: base{At: loc}, Name: name, Params: params, Ret: ret, Body: body, Visibility: vis}
}

func NewConstructorDecl(loc source.Loc, name string, params []Param, body *BlockStmt) *ConstructorDecl {
	return &ConstructorDecl{base: base{At: loc}, Name: name, Params: params, Body: body}
}

func NewTypeDecl(loc source.Loc, kind TypeDeclKind, name string) *TypeDecl {
	return &TypeDecl{base: base{At: loc}, Kind: kind, Name: name}
}

func NewFieldDecl(loc source.Loc, name string, typ TypeNode, vis Visibility) *FieldDecl {
	return &FieldDecl{base: base{At: loc}, Name: name, Type: typ, Visibility: vis}
}

func NewGlobalVarDecl(loc source.Loc, name string, typ TypeNode, init Expr, isConst, isFinal bool) *GlobalVarDecl {
	return &GlobalVarDecl{base: base{At: loc}, Name: name, Type: typ, Init: init, IsConst: isConst, IsFinal: isFinal}
}

func NewBlockStmt(loc source.Loc, stmts []Stmt) *BlockStmt {
	return &BlockStmt{base: base{At: loc}, Stmts: stmts}
}

func NewExprStmt(loc source.Loc, x Expr) *ExprStmt {
	return &ExprStmt{base: base{At: loc}, X: x}
}

func NewVarStmt(loc source.Loc, name string, typ TypeNode, init Expr, isFinal bool) *VarStmt {
	return &VarStmt{base: base{At: loc}, Name: name, Type: typ, Init: init, IsFinal: isFinal}
}

func NewAssignStmt(loc source.Loc, target, value Expr) *AssignStmt {
	return &AssignStmt{base: base{At: loc}, Target: target, Value: value}
}

func NewIfStmt(loc source.Loc, cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{base: base{At: loc}, Cond: cond, Then: then, Else: els}
}

func NewWhileStmt(loc source.Loc, cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{base: base{At: loc}, Cond: cond, Body: body}
}

func NewForStmt(loc source.Loc, v string, lo, hi, step Expr, down bool, body Stmt) *ForStmt {
	return &ForStmt{base: base{At: loc}, Var: v, Lo: lo, Hi: hi, Step: step, Down: down, Body: body}
}

func NewForInStmt(loc source.Loc, v string, coll Expr, body Stmt) *ForInStmt {
	return &ForInStmt{base: base{At: loc}, Var: v, Collection: coll, Body: body}
}

func NewReturnStmt(loc source.Loc, value Expr) *ReturnStmt {
	return &ReturnStmt{base: base{At: loc}, Value: value}
}

func NewBreakStmt(loc source.Loc) *BreakStmt { return &BreakStmt{base: base{At: loc}} }

func NewContinueStmt(loc source.Loc) *ContinueStmt { return &ContinueStmt{base: base{At: loc}} }

func NewGuardStmt(loc source.Loc, cond Expr, els *BlockStmt) *GuardStmt {
	return &GuardStmt{base: base{At: loc}, Cond: cond, Else: els}
}

func NewMatchStmt(loc source.Loc, scrutinee Expr, arms []MatchStmtArm) *MatchStmt {
	return &MatchStmt{base: base{At: loc}, Scrutinee: scrutinee, Arms: arms}
}

func NewIntLit(loc source.Loc, value int64, raw string) *IntLit {
	return &IntLit{base: base{At: loc}, Value: value, Raw: raw}
}

func NewNumberLit(loc source.Loc, value float64, raw string) *NumberLit {
	return &NumberLit{base: base{At: loc}, Value: value, Raw: raw}
}

func NewStringLit(loc source.Loc, value string) *StringLit {
	return &StringLit{base: base{At: loc}, Value: value}
}

func NewInterpStringExpr(loc source.Loc, segments []string, exprs []Expr) *InterpStringExpr {
	return &InterpStringExpr{base: base{At: loc}, Segments: segments, Exprs: exprs}
}

func NewBoolLit(loc source.Loc, value bool) *BoolLit {
	return &BoolLit{base: base{At: loc}, Value: value}
}

func NewNullLit(loc source.Loc) *NullLit { return &NullLit{base: base{At: loc}} }

func NewUnitLit(loc source.Loc) *UnitLit { return &UnitLit{base: base{At: loc}} }

func NewIdent(loc source.Loc, name string) *Ident {
	return &Ident{base: base{At: loc}, Name: name}
}

func NewSelfExpr(loc source.Loc) *SelfExpr { return &SelfExpr{base: base{At: loc}} }

func NewSuperExpr(loc source.Loc) *SuperExpr { return &SuperExpr{base: base{At: loc}} }

func NewBinaryExpr(loc source.Loc, op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{base: base{At: loc}, Op: op, Left: left, Right: right}
}

func NewUnaryExpr(loc source.Loc, op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{base: base{At: loc}, Op: op, Operand: operand}
}

func NewTernaryExpr(loc source.Loc, cond, then, els Expr) *TernaryExpr {
	return &TernaryExpr{base: base{At: loc}, Cond: cond, Then: then, Else: els}
}

func NewCallExpr(loc source.Loc, callee Expr, args []Arg) *CallExpr {
	return &CallExpr{base: base{At: loc}, Callee: callee, Args: args}
}

func NewIndexExpr(loc source.Loc, recv, index Expr) *IndexExpr {
	return &IndexExpr{base: base{At: loc}, Receiver: recv, Index: index}
}

func NewFieldExpr(loc source.Loc, recv Expr, field string) *FieldExpr {
	return &FieldExpr{base: base{At: loc}, Receiver: recv, Field: field}
}

func NewOptionalChainExpr(loc source.Loc, recv Expr, field string) *OptionalChainExpr {
	return &OptionalChainExpr{base: base{At: loc}, Receiver: recv, Field: field}
}

func NewCoalesceExpr(loc source.Loc, left, right Expr) *CoalesceExpr {
	return &CoalesceExpr{base: base{At: loc}, Left: left, Right: right}
}

func NewIsExpr(loc source.Loc, value Expr, typ TypeNode) *IsExpr {
	return &IsExpr{base: base{At: loc}, Value: value, Type: typ}
}

func NewAsExpr(loc source.Loc, value Expr, typ TypeNode) *AsExpr {
	return &AsExpr{base: base{At: loc}, Value: value, Type: typ}
}

func NewRangeExpr(loc source.Loc, lo, hi Expr) *RangeExpr {
	return &RangeExpr{base: base{At: loc}, Lo: lo, Hi: hi}
}

func NewTryExpr(loc source.Loc, value Expr) *TryExpr {
	return &TryExpr{base: base{At: loc}, Value: value}
}

func NewTupleIndexExpr(loc source.Loc, recv Expr, index int) *TupleIndexExpr {
	return &TupleIndexExpr{base: base{At: loc}, Receiver: recv, Index: index}
}

func NewNewExpr(loc source.Loc, typ TypeNode, args []Arg) *NewExpr {
	return &NewExpr{base: base{At: loc}, Type: typ, Args: args}
}

func NewLambdaExpr(loc source.Loc, params []Param, ret TypeNode, body Expr) *LambdaExpr {
	return &LambdaExpr{base: base{At: loc}, Params: params, Ret: ret, Body: body}
}

func NewListLit(loc source.Loc, elems []Expr) *ListLit {
	return &ListLit{base: base{At: loc}, Elems: elems}
}

func NewMapLit(loc source.Loc, entries []MapEntry) *MapLit {
	return &MapLit{base: base{At: loc}, Entries: entries}
}

func NewSetLit(loc source.Loc, elems []Expr) *SetLit {
	return &SetLit{base: base{At: loc}, Elems: elems}
}

func NewTupleExpr(loc source.Loc, elems []Expr) *TupleExpr {
	return &TupleExpr{base: base{At: loc}, Elems: elems}
}

func NewIfExpr(loc source.Loc, cond, then, els Expr) *IfExpr {
	return &IfExpr{base: base{At: loc}, Cond: cond, Then: then, Else: els}
}

func NewMatchExpr(loc source.Loc, scrutinee Expr, arms []MatchArm) *MatchExpr {
	return &MatchExpr{base: base{At: loc}, Scrutinee: scrutinee, Arms: arms}
}

func NewBlockExpr(loc source.Loc, stmts []Stmt, tail Expr) *BlockExpr {
	return &BlockExpr{base: base{At: loc}, Stmts: stmts, Tail: tail}
}

func NewPropertyDecl(loc source.Loc, name string, typ TypeNode, getter, setter string) *PropertyDecl {
	return &PropertyDecl{base: base{At: loc}, Name: name, Type: typ, Getter: getter, Setter: setter}
}

func NewGenericTypeNode(loc source.Loc, name string, args []TypeNode) *GenericTypeNode {
	return &GenericTypeNode{base: base{At: loc}, Name: name, Args: args}
}

func NewOptionalTypeNode(loc source.Loc, inner TypeNode) *OptionalTypeNode {
	return &OptionalTypeNode{base: base{At: loc}, Inner: inner}
}

func NewFuncTypeNode(loc source.Loc, params []TypeNode, ret TypeNode) *FuncTypeNode {
	return &FuncTypeNode{base: base{At: loc}, Params: params, Ret: ret}
}

func NewTupleTypeNode(loc source.Loc, elems []TypeNode) *TupleTypeNode {
	return &TupleTypeNode{base: base{At: loc}, Elems: elems}
}
