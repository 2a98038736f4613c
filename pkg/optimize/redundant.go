package optimize

import "github.com/naturelang/naturec/pkg/tac"

// key identifies a pure computation by its opcode and operands, so a
// second identical computation can reuse the first one's result instead of
// recomputing it.
type key struct {
	op         tac.Opcode
	a1, a2, a3 tac.Operand
}

// eliminateRedundantLoads finds pure instructions recomputing a value
// already held in some temp or variable, within the same straight-line run
// (no intervening label, branch, call, or write to an involved operand),
// and rewrites the second occurrence into a copy of the first's result.
func eliminateRedundantLoads(fn *tac.Function, stats *Stats) bool {
	changed := false
	available := make(map[key]tac.Operand)

	invalidate := func(op tac.Operand) {
		for k := range available {
			if operandRefersTo(k.a1, op) || operandRefersTo(k.a2, op) || operandRefersTo(k.a3, op) {
				delete(available, k)
			}
		}
	}

	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Dead {
			continue
		}

		if instr.Opcode == tac.OpAssign {
			// A plain copy only kills entries mentioning its target; it
			// has no expression of its own worth memoizing.
			if instr.Result.Kind != tac.OperandNone {
				invalidate(instr.Result)
			}
			continue
		}
		if !isPure(instr.Opcode) {
			// Control flow, calls, and I/O invalidate everything; they may
			// revisit code or mutate state this pass can't see.
			available = make(map[key]tac.Operand)
			continue
		}

		k := key{instr.Opcode, instr.Arg1, instr.Arg2, instr.Arg3}
		if prior, ok := available[k]; ok && instr.Result.Kind != tac.OperandNone {
			instr.Opcode = tac.OpAssign
			instr.Arg1 = prior
			instr.Arg2 = tac.None
			instr.Arg3 = tac.None
			stats.RedundantLoadsEliminated++
			changed = true
			continue
		}

		if instr.Result.Kind != tac.OperandNone {
			invalidate(instr.Result)
			available[k] = instr.Result
		}
	}
	return changed
}

func operandRefersTo(candidate, target tac.Operand) bool {
	if candidate.Kind != target.Kind {
		return false
	}
	switch candidate.Kind {
	case tac.OperandTemp:
		return candidate.Temp == target.Temp
	case tac.OperandVar:
		return candidate.Name == target.Name
	default:
		return false
	}
}

// isPure reports whether op has no side effect and always produces the
// same result given the same operands, making it safe to deduplicate.
func isPure(op tac.Opcode) bool {
	switch op {
	case tac.OpAdd, tac.OpSub, tac.OpMul, tac.OpDiv, tac.OpMod, tac.OpPow, tac.OpConcat,
		tac.OpEq, tac.OpNeq, tac.OpLt, tac.OpGt, tac.OpLte, tac.OpGte, tac.OpBetween,
		tac.OpAnd, tac.OpOr, tac.OpNot, tac.OpNeg, tac.OpPos,
		tac.OpListGet, tac.OpListLen:
		return true
	default:
		return false
	}
}
