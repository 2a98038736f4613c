package optimize

import "github.com/naturelang/naturec/pkg/tac"

// simplifyAlgebraic rewrites instructions that have an identity or
// absorbing operand — x+0, x*1, x and true, and so on — into a plain
// assignment, skipping the arithmetic entirely.
func simplifyAlgebraic(fn *tac.Function, stats *Stats) bool {
	changed := false
	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Dead {
			continue
		}
		if replacement, ok := algebraicIdentity(instr.Opcode, instr.Arg1, instr.Arg2); ok {
			instr.Opcode = tac.OpAssign
			instr.Arg1 = replacement
			instr.Arg2 = tac.None
			stats.AlgebraicSimplifications++
			changed = true
		}
	}
	return changed
}

func algebraicIdentity(op tac.Opcode, a, b tac.Operand) (tac.Operand, bool) {
	switch op {
	case tac.OpAdd:
		if isZero(b) {
			return a, true
		}
		if isZero(a) {
			return b, true
		}
	case tac.OpSub:
		if isZero(b) {
			return a, true
		}
	case tac.OpMul:
		if isOne(b) {
			return a, true
		}
		if isOne(a) {
			return b, true
		}
		if isZero(a) || isZero(b) {
			return zeroLike(a), true
		}
	case tac.OpDiv:
		if isOne(b) {
			return a, true
		}
	case tac.OpAnd:
		if isTrueConst(a) {
			return b, true
		}
		if isTrueConst(b) {
			return a, true
		}
		if isFalseConst(a) || isFalseConst(b) {
			return tac.BoolConst(false), true
		}
	case tac.OpOr:
		if isFalseConst(a) {
			return b, true
		}
		if isFalseConst(b) {
			return a, true
		}
		if isTrueConst(a) || isTrueConst(b) {
			return tac.BoolConst(true), true
		}
	}
	return tac.None, false
}

func isZero(op tac.Operand) bool {
	switch op.Kind {
	case tac.OperandIntConst:
		return op.IntVal == 0
	case tac.OperandFloatConst:
		return op.FltVal == 0
	default:
		return false
	}
}

func isOne(op tac.Operand) bool {
	switch op.Kind {
	case tac.OperandIntConst:
		return op.IntVal == 1
	case tac.OperandFloatConst:
		return op.FltVal == 1
	default:
		return false
	}
}

func zeroLike(op tac.Operand) tac.Operand {
	if op.Kind == tac.OperandFloatConst {
		return tac.FloatConst(0)
	}
	return tac.IntConst(0)
}

func isTrueConst(op tac.Operand) bool  { return op.Kind == tac.OperandBoolConst && op.BoolVal() }
func isFalseConst(op tac.Operand) bool { return op.Kind == tac.OperandBoolConst && !op.BoolVal() }
