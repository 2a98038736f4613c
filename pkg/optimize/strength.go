package optimize

import "github.com/naturelang/naturec/pkg/tac"

// reduceStrength replaces an expensive operation with cheaper equivalent
// ones when an operand is a favorable constant: x*2 becomes x+x, and
// pow(x,2) becomes x*x, both avoiding pkg/cgen's general multiply/pow call.
func reduceStrength(fn *tac.Function, stats *Stats) bool {
	changed := false
	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Dead {
			continue
		}
		switch instr.Opcode {
		case tac.OpMul:
			if isTwo(instr.Arg2) {
				instr.Opcode = tac.OpAdd
				instr.Arg2 = instr.Arg1
				stats.StrengthReductions++
				changed = true
			} else if isTwo(instr.Arg1) {
				instr.Opcode = tac.OpAdd
				instr.Arg1 = instr.Arg2
				stats.StrengthReductions++
				changed = true
			}
		case tac.OpPow:
			if isTwo(instr.Arg2) {
				instr.Opcode = tac.OpMul
				instr.Arg2 = instr.Arg1
				stats.StrengthReductions++
				changed = true
			}
		}
	}
	return changed
}

func isTwo(op tac.Operand) bool {
	switch op.Kind {
	case tac.OperandIntConst:
		return op.IntVal == 2
	case tac.OperandFloatConst:
		return op.FltVal == 2
	default:
		return false
	}
}
