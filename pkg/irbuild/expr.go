package irbuild

import (
	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

// lowerExpr evaluates e, emitting whatever instructions are necessary, and
// returns the operand holding its value.
func (b *Builder) lowerExpr(e ast.Expr) tac.Operand {
	switch n := e.(type) {
	case *ast.LiteralInt:
		return tac.IntConst(n.Value)
	case *ast.LiteralFloat:
		return tac.FloatConst(n.Value)
	case *ast.LiteralString:
		return tac.StringConst(n.Value)
	case *ast.LiteralBool:
		return tac.BoolConst(n.Value)
	case *ast.Identifier:
		if n.Type() == ast.Unknown {
			return tac.Var(n.Name, ast.Number)
		}
		return tac.Var(n.Name, n.Type())
	case *ast.BinaryOp:
		return b.lowerBinaryOp(n)
	case *ast.UnaryOp:
		return b.lowerUnaryOp(n)
	case *ast.TernaryOp:
		return b.lowerBetween(n)
	case *ast.FuncCall:
		return b.lowerFuncCall(n)
	case *ast.Index:
		return b.lowerIndex(n)
	case *ast.ListExpr:
		return b.lowerListExpr(n)
	default:
		return tac.None
	}
}

func (b *Builder) lowerBinaryOp(n *ast.BinaryOp) tac.Operand {
	left := b.lowerExpr(n.Left)
	right := b.lowerExpr(n.Right)
	op := binOpcode(n.Op, n.Left.Type(), n.Right.Type())
	result := b.newTemp(n.Type())
	b.fn.Emit(op, result, left, right, tac.None, line(n))
	return result
}

// binOpcode maps a surface operator to its TAC opcode. OpAdd lowers to
// OpConcat whenever either operand is text, matching pkg/semantic's rule
// that such an addition produces Text.
func binOpcode(op ast.Operator, leftType, rightType ast.DataType) tac.Opcode {
	if op == ast.OpAdd && (leftType == ast.Text || rightType == ast.Text) {
		return tac.OpConcat
	}
	switch op {
	case ast.OpAdd:
		return tac.OpAdd
	case ast.OpSub:
		return tac.OpSub
	case ast.OpMul:
		return tac.OpMul
	case ast.OpDiv:
		return tac.OpDiv
	case ast.OpMod:
		return tac.OpMod
	case ast.OpPow:
		return tac.OpPow
	case ast.OpEq:
		return tac.OpEq
	case ast.OpNeq:
		return tac.OpNeq
	case ast.OpLt:
		return tac.OpLt
	case ast.OpGt:
		return tac.OpGt
	case ast.OpLte:
		return tac.OpLte
	case ast.OpGte:
		return tac.OpGte
	case ast.OpAnd:
		return tac.OpAnd
	case ast.OpOr:
		return tac.OpOr
	default:
		return tac.OpNop
	}
}

func (b *Builder) lowerUnaryOp(n *ast.UnaryOp) tac.Operand {
	x := b.lowerExpr(n.X)
	var op tac.Opcode
	switch n.Op {
	case ast.OpNeg:
		op = tac.OpNeg
	case ast.OpPos:
		op = tac.OpPos
	case ast.OpNot:
		op = tac.OpNot
	}
	result := b.newTemp(n.Type())
	b.fn.Emit(op, result, x, tac.None, tac.None, line(n))
	return result
}

func (b *Builder) lowerBetween(n *ast.TernaryOp) tac.Operand {
	val := b.lowerExpr(n.Value)
	lower := b.lowerExpr(n.Lower)
	upper := b.lowerExpr(n.Upper)
	result := b.newTemp(ast.Flag)
	b.fn.Emit(tac.OpBetween, result, val, lower, upper, line(n))
	return result
}

func (b *Builder) lowerFuncCall(n *ast.FuncCall) tac.Operand {
	args := make([]tac.Operand, len(n.Args))
	for i, arg := range n.Args {
		args[i] = b.lowerExpr(arg)
	}
	for _, a := range args {
		b.fn.Emit(tac.OpParam, tac.None, a, tac.None, tac.None, line(n))
	}
	result := tac.None
	if n.Type() != ast.Nothing {
		result = b.newTemp(n.Type())
	}
	b.fn.Emit(tac.OpCall, result, tac.FuncOperand(n.Name), tac.IntConst(int64(len(args))), tac.None, line(n))
	return result
}

func (b *Builder) lowerIndex(n *ast.Index) tac.Operand {
	arr := b.lowerExpr(n.Array)
	idx := b.lowerExpr(n.IndexExpr)
	result := b.newTemp(n.Type())
	b.fn.Emit(tac.OpListGet, result, arr, idx, tac.None, line(n))
	return result
}

func (b *Builder) lowerListExpr(n *ast.ListExpr) tac.Operand {
	list := b.newTemp(ast.List)
	b.fn.Emit(tac.OpListCreate, list, tac.None, tac.None, tac.None, line(n))
	for _, elem := range n.Elements {
		v := b.lowerExpr(elem)
		b.fn.Emit(tac.OpListAppend, tac.None, list, v, tac.None, line(n))
	}
	return list
}
