package ast

// Construction helpers mirroring original_source/include/ast.h's
// ast_create_* family. Used by internal/frontend's decoder and by tests
// that build ASTs by hand instead of through JSON.

func NewProgram(loc SourceLocation, stmts ...Stmt) *Program {
	return &Program{StmtBase: StmtBase{Loc: loc}, Statements: stmts}
}

func NewVarDecl(loc SourceLocation, name string, typ DataType, init Expr, isConst bool) *VarDecl {
	return &VarDecl{StmtBase: StmtBase{Loc: loc}, Name: name, DeclaredType: typ, Init: init, IsConst: isConst}
}

func NewFuncDecl(loc SourceLocation, name string, params []*ParamDecl, ret DataType, body *Block) *FuncDecl {
	return &FuncDecl{StmtBase: StmtBase{Loc: loc}, Name: name, Params: params, ReturnType: ret, Body: body}
}

func NewParamDecl(loc SourceLocation, name string, typ DataType) *ParamDecl {
	return &ParamDecl{StmtBase: StmtBase{Loc: loc}, Name: name, DeclaredType: typ}
}

func NewBlock(loc SourceLocation, stmts ...Stmt) *Block {
	return &Block{StmtBase: StmtBase{Loc: loc}, Statements: stmts}
}

func NewAssign(loc SourceLocation, target, value Expr) *Assign {
	return &Assign{StmtBase: StmtBase{Loc: loc}, Target: target, Value: value}
}

func NewIf(loc SourceLocation, cond Expr, then, els *Block) *If {
	return &If{StmtBase: StmtBase{Loc: loc}, Cond: cond, Then: then, Else: els}
}

func NewWhile(loc SourceLocation, cond Expr, body *Block) *While {
	return &While{StmtBase: StmtBase{Loc: loc}, Cond: cond, Body: body}
}

func NewRepeat(loc SourceLocation, count Expr, body *Block) *Repeat {
	return &Repeat{StmtBase: StmtBase{Loc: loc}, Count: count, Body: body}
}

func NewForEach(loc SourceLocation, iterName string, iterable Expr, body *Block) *ForEach {
	return &ForEach{StmtBase: StmtBase{Loc: loc}, IteratorName: iterName, Iterable: iterable, Body: body}
}

func NewReturn(loc SourceLocation, value Expr) *Return {
	return &Return{StmtBase: StmtBase{Loc: loc}, Value: value}
}

func NewBreak(loc SourceLocation) *Break       { return &Break{StmtBase: StmtBase{Loc: loc}} }
func NewContinue(loc SourceLocation) *Continue { return &Continue{StmtBase: StmtBase{Loc: loc}} }

func NewExprStmt(loc SourceLocation, x Expr) *ExprStmt {
	return &ExprStmt{StmtBase: StmtBase{Loc: loc}, X: x}
}

func NewDisplay(loc SourceLocation, value Expr) *Display {
	return &Display{StmtBase: StmtBase{Loc: loc}, Value: value}
}

func NewAsk(loc SourceLocation, prompt Expr, target string) *Ask {
	return &Ask{StmtBase: StmtBase{Loc: loc}, Prompt: prompt, Target: target}
}

func NewRead(loc SourceLocation, target string) *Read {
	return &Read{StmtBase: StmtBase{Loc: loc}, Target: target}
}

func NewSecureZone(loc SourceLocation, body *Block, isSafe bool) *SecureZone {
	return &SecureZone{StmtBase: StmtBase{Loc: loc}, Body: body, IsSafe: isSafe}
}

func NewBinaryOp(loc SourceLocation, op Operator, left, right Expr) *BinaryOp {
	return &BinaryOp{ExprBase: ExprBase{Loc: loc}, Op: op, Left: left, Right: right}
}

func NewUnaryOp(loc SourceLocation, op Operator, x Expr) *UnaryOp {
	return &UnaryOp{ExprBase: ExprBase{Loc: loc}, Op: op, X: x}
}

func NewBetween(loc SourceLocation, value, lower, upper Expr) *TernaryOp {
	return &TernaryOp{ExprBase: ExprBase{Loc: loc}, Op: OpBetween, Value: value, Lower: lower, Upper: upper}
}

func NewLiteralInt(loc SourceLocation, v int64) *LiteralInt {
	return &LiteralInt{ExprBase: ExprBase{Loc: loc, DataType: Number}, Value: v}
}

func NewLiteralFloat(loc SourceLocation, v float64) *LiteralFloat {
	return &LiteralFloat{ExprBase: ExprBase{Loc: loc, DataType: Decimal}, Value: v}
}

func NewLiteralString(loc SourceLocation, v string) *LiteralString {
	return &LiteralString{ExprBase: ExprBase{Loc: loc, DataType: Text}, Value: v}
}

func NewLiteralBool(loc SourceLocation, v bool) *LiteralBool {
	return &LiteralBool{ExprBase: ExprBase{Loc: loc, DataType: Flag}, Value: v}
}

func NewIdentifier(loc SourceLocation, name string) *Identifier {
	return &Identifier{ExprBase: ExprBase{Loc: loc}, Name: name}
}

func NewFuncCall(loc SourceLocation, name string, args ...Expr) *FuncCall {
	return &FuncCall{ExprBase: ExprBase{Loc: loc}, Name: name, Args: args}
}

func NewIndex(loc SourceLocation, array, index Expr) *Index {
	return &Index{ExprBase: ExprBase{Loc: loc}, Array: array, IndexExpr: index}
}

func NewList(loc SourceLocation, elems ...Expr) *ListExpr {
	return &ListExpr{ExprBase: ExprBase{Loc: loc}, Elements: elems}
}
