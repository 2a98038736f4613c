package semantic

import "github.com/naturelang/naturec/pkg/ast"

// analyzeExpr resolves e's type, annotates it in place via SetType, and
// returns the resolved type for the caller's own checking.
func (a *Analyzer) analyzeExpr(e ast.Expr) ast.DataType {
	switch n := e.(type) {
	case *ast.LiteralInt:
		n.SetType(ast.Number)
	case *ast.LiteralFloat:
		n.SetType(ast.Decimal)
	case *ast.LiteralString:
		n.SetType(ast.Text)
	case *ast.LiteralBool:
		n.SetType(ast.Flag)
	case *ast.Identifier:
		a.analyzeIdentifier(n)
	case *ast.BinaryOp:
		a.analyzeBinaryOp(n)
	case *ast.UnaryOp:
		a.analyzeUnaryOp(n)
	case *ast.TernaryOp:
		a.analyzeTernaryOp(n)
	case *ast.FuncCall:
		a.analyzeFuncCall(n)
	case *ast.Index:
		a.analyzeIndex(n)
	case *ast.ListExpr:
		a.analyzeListExpr(n)
	default:
		a.error(e.Pos(), "internal: unhandled expression type %T", e)
		e.SetType(ast.Error)
	}
	return e.Type()
}

func (a *Analyzer) analyzeIdentifier(n *ast.Identifier) {
	sym := a.table.Lookup(n.Name)
	if sym == nil {
		a.error(n.Pos(), "%q is not declared", n.Name)
		n.SetType(ast.Error)
		return
	}
	if !sym.Initialized {
		a.warn(n.Pos(), "%q is used before being assigned a value", n.Name)
	}
	n.SetType(sym.Type)
}

func (a *Analyzer) analyzeBinaryOp(n *ast.BinaryOp) {
	leftType := a.analyzeExpr(n.Left)
	rightType := a.analyzeExpr(n.Right)
	if a.table.InSecureZone() {
		// Secure zones do not restrict which operators may run inside them
		// (SPEC_FULL.md §4.1). Type checking proceeds unchanged.
	}
	result, ok := BinaryResultType(n.Op, leftType, rightType)
	if !ok {
		a.error(n.Pos(), "operator %s is not defined for %s and %s", n.Op, leftType, rightType)
		n.SetType(ast.Error)
		return
	}
	n.SetType(result)
}

func (a *Analyzer) analyzeUnaryOp(n *ast.UnaryOp) {
	operandType := a.analyzeExpr(n.X)
	result, ok := UnaryResultType(n.Op, operandType)
	if !ok {
		a.error(n.Pos(), "operator %s is not defined for %s", n.Op, operandType)
		n.SetType(ast.Error)
		return
	}
	n.SetType(result)
}

func (a *Analyzer) analyzeTernaryOp(n *ast.TernaryOp) {
	valType := a.analyzeExpr(n.Value)
	lowerType := a.analyzeExpr(n.Lower)
	upperType := a.analyzeExpr(n.Upper)
	if !IsNumeric(valType) || !IsNumeric(lowerType) || !IsNumeric(upperType) {
		if valType != ast.Unknown && valType != ast.Error {
			a.error(n.Pos(), "between requires numeric operands, got %s, %s, %s", valType, lowerType, upperType)
		}
		n.SetType(ast.Error)
		return
	}
	n.SetType(ast.Flag)
}

func (a *Analyzer) analyzeFuncCall(n *ast.FuncCall) {
	for _, arg := range n.Args {
		a.analyzeExpr(arg)
	}
	sym := a.table.LookupFunction(n.Name)
	if sym == nil {
		a.error(n.Pos(), "%q is not a declared function", n.Name)
		n.SetType(ast.Error)
		return
	}
	if len(n.Args) != len(sym.Func.Params) {
		a.error(n.Pos(), "%q expects %d argument(s), got %d", n.Name, len(sym.Func.Params), len(n.Args))
		n.SetType(sym.Func.ReturnType)
		return
	}
	for i, arg := range n.Args {
		want := sym.Func.Params[i].Type
		if !TypesCompatible(want, arg.Type()) {
			a.error(arg.Pos(), "argument %d to %q has type %s, expected %s", i+1, n.Name, arg.Type(), want)
		}
	}
	n.SetType(sym.Func.ReturnType)
}

func (a *Analyzer) analyzeIndex(n *ast.Index) {
	arrayType := a.analyzeExpr(n.Array)
	indexType := a.analyzeExpr(n.IndexExpr)
	if arrayType != ast.List && arrayType != ast.Text && arrayType != ast.Unknown && arrayType != ast.Error {
		a.error(n.Array.Pos(), "cannot index a value of type %s", arrayType)
	}
	if !IsNumeric(indexType) && indexType != ast.Unknown && indexType != ast.Error {
		a.error(n.IndexExpr.Pos(), "index must be a number, got %s", indexType)
	}
	// The AST has no per-list element type, so a List's element is Unknown;
	// a Text's element is the character it yields, Text (SPEC_FULL.md §4.1),
	// matching the ForEach iterator's annotation.
	if arrayType == ast.Text {
		n.SetType(ast.Text)
	} else {
		n.SetType(ast.Unknown)
	}
}

func (a *Analyzer) analyzeListExpr(n *ast.ListExpr) {
	for _, elem := range n.Elements {
		a.analyzeExpr(elem)
	}
	n.SetType(ast.List)
}
