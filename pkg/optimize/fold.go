package optimize

import (
	"math"
	"strconv"

	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

// foldConstants replaces any instruction whose operands are all compile-time
// constants with a plain assignment of the computed value. Mod on Decimal
// operands is deliberately left unfolded: original_source's folder agrees
// this combination is not worth constant-folding (SPEC_FULL.md §4.2).
// Operators other than concatenation are also left unfolded when an
// operand is a text constant.
func foldConstants(fn *tac.Function, stats *Stats) bool {
	changed := false
	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Dead {
			continue
		}
		if folded, ok := foldInstr(instr); ok {
			instr.Opcode = tac.OpAssign
			instr.Arg1 = folded
			instr.Arg2 = tac.None
			instr.Arg3 = tac.None
			stats.ConstantsFolded++
			changed = true
		}
	}
	return changed
}

func foldInstr(instr *tac.Instr) (tac.Operand, bool) {
	switch instr.Opcode {
	case tac.OpNeg, tac.OpPos, tac.OpNot:
		if !instr.Arg1.IsConst() {
			return tac.None, false
		}
		return foldUnary(instr.Opcode, instr.Arg1)
	case tac.OpAdd, tac.OpSub, tac.OpMul, tac.OpDiv, tac.OpMod, tac.OpPow,
		tac.OpEq, tac.OpNeq, tac.OpLt, tac.OpGt, tac.OpLte, tac.OpGte,
		tac.OpAnd, tac.OpOr, tac.OpConcat:
		if !instr.Arg1.IsConst() || !instr.Arg2.IsConst() {
			return tac.None, false
		}
		if instr.Opcode == tac.OpMod && (instr.Arg1.Type == ast.Decimal || instr.Arg2.Type == ast.Decimal) {
			return tac.None, false
		}
		return foldBinary(instr.Opcode, instr.Arg1, instr.Arg2)
	default:
		return tac.None, false
	}
}

func foldUnary(op tac.Opcode, x tac.Operand) (tac.Operand, bool) {
	switch op {
	case tac.OpNeg:
		if x.Kind == tac.OperandFloatConst {
			return tac.FloatConst(-x.FltVal), true
		}
		return tac.IntConst(-x.IntVal), true
	case tac.OpPos:
		return x, true
	case tac.OpNot:
		return tac.BoolConst(!x.BoolVal()), true
	}
	return tac.None, false
}

func foldBinary(op tac.Opcode, a, b tac.Operand) (tac.Operand, bool) {
	if op == tac.OpConcat {
		return tac.StringConst(operandText(a) + operandText(b)), true
	}
	if a.Kind == tac.OperandStringConst || b.Kind == tac.OperandStringConst {
		return tac.None, false
	}
	if a.Type == ast.Decimal || b.Type == ast.Decimal {
		return foldFloatBinary(op, asFloat(a), asFloat(b))
	}
	switch op {
	case tac.OpAdd, tac.OpSub, tac.OpMul, tac.OpDiv, tac.OpMod, tac.OpPow:
		return foldIntBinary(op, a.IntVal, b.IntVal)
	case tac.OpEq, tac.OpNeq, tac.OpLt, tac.OpGt, tac.OpLte, tac.OpGte:
		return foldIntCompare(op, a.IntVal, b.IntVal)
	case tac.OpAnd, tac.OpOr:
		return tac.BoolConst(foldBool(op, a.BoolVal(), b.BoolVal())), true
	}
	return tac.None, false
}

func foldIntBinary(op tac.Opcode, a, b int64) (tac.Operand, bool) {
	switch op {
	case tac.OpAdd:
		return tac.IntConst(a + b), true
	case tac.OpSub:
		return tac.IntConst(a - b), true
	case tac.OpMul:
		return tac.IntConst(a * b), true
	case tac.OpDiv:
		if b == 0 {
			return tac.None, false
		}
		return tac.IntConst(a / b), true
	case tac.OpMod:
		if b == 0 {
			return tac.None, false
		}
		return tac.IntConst(a % b), true
	case tac.OpPow:
		return tac.IntConst(int64(math.Pow(float64(a), float64(b)))), true
	}
	return tac.None, false
}

func foldIntCompare(op tac.Opcode, a, b int64) (tac.Operand, bool) {
	switch op {
	case tac.OpEq:
		return tac.BoolConst(a == b), true
	case tac.OpNeq:
		return tac.BoolConst(a != b), true
	case tac.OpLt:
		return tac.BoolConst(a < b), true
	case tac.OpGt:
		return tac.BoolConst(a > b), true
	case tac.OpLte:
		return tac.BoolConst(a <= b), true
	case tac.OpGte:
		return tac.BoolConst(a >= b), true
	}
	return tac.None, false
}

func foldFloatBinary(op tac.Opcode, a, b float64) (tac.Operand, bool) {
	switch op {
	case tac.OpAdd:
		return tac.FloatConst(a + b), true
	case tac.OpSub:
		return tac.FloatConst(a - b), true
	case tac.OpMul:
		return tac.FloatConst(a * b), true
	case tac.OpDiv:
		if b == 0 {
			return tac.None, false
		}
		return tac.FloatConst(a / b), true
	case tac.OpPow:
		return tac.FloatConst(math.Pow(a, b)), true
	case tac.OpEq:
		return tac.BoolConst(a == b), true
	case tac.OpNeq:
		return tac.BoolConst(a != b), true
	case tac.OpLt:
		return tac.BoolConst(a < b), true
	case tac.OpGt:
		return tac.BoolConst(a > b), true
	case tac.OpLte:
		return tac.BoolConst(a <= b), true
	case tac.OpGte:
		return tac.BoolConst(a >= b), true
	}
	return tac.None, false
}

func foldBool(op tac.Opcode, a, b bool) bool {
	if op == tac.OpAnd {
		return a && b
	}
	return a || b
}

func asFloat(op tac.Operand) float64 {
	if op.Kind == tac.OperandFloatConst {
		return op.FltVal
	}
	return float64(op.IntVal)
}

// operandText renders a constant operand the way concatenation does: plain
// decimal for numbers, %v-style for decimals, true/false for flags, and the
// string itself (unquoted) for text.
func operandText(op tac.Operand) string {
	switch op.Kind {
	case tac.OperandStringConst:
		return op.StrVal
	case tac.OperandFloatConst:
		return strconv.FormatFloat(op.FltVal, 'g', -1, 64)
	case tac.OperandBoolConst:
		return strconv.FormatBool(op.BoolVal())
	case tac.OperandIntConst:
		return strconv.FormatInt(op.IntVal, 10)
	default:
		return ""
	}
}
