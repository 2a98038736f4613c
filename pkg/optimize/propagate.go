package optimize

import "github.com/naturelang/naturec/pkg/tac"

// propagateConstants walks fn forward, remembering which temps and
// variables currently hold a known constant value, and substitutes that
// constant wherever the temp/variable is read. The map is scoped to fn —
// original_source's folder kept one table for the whole program, which let
// a constant learned in one function leak into another; SPEC_FULL.md §4.3
// resolves that by giving every function its own table.
//
// A label clears everything known, temps included, since a jump may arrive
// from a point where the mapping doesn't hold (loop counters are temps
// that pkg/irbuild writes more than once).
func propagateConstants(fn *tac.Function, stats *Stats) bool {
	changed := false
	known := make(map[liveKey]tac.Operand)

	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Dead {
			continue
		}

		if instr.Opcode == tac.OpLabel {
			known = make(map[liveKey]tac.Operand)
			continue
		}

		if substituted := substitute(known, &instr.Arg1); substituted {
			changed = true
			stats.PropagationsApplied++
		}
		if substituted := substitute(known, &instr.Arg2); substituted {
			changed = true
			stats.PropagationsApplied++
		}
		if substituted := substitute(known, &instr.Arg3); substituted {
			changed = true
			stats.PropagationsApplied++
		}

		if instr.Opcode == tac.OpAssign && instr.Result.Kind != tac.OperandNone {
			if k, ok := toLiveKey(instr.Result); ok {
				if instr.Arg1.IsConst() {
					known[k] = instr.Arg1
				} else {
					delete(known, k)
				}
			}
			continue
		}
		if instr.Result.Kind != tac.OperandNone {
			if k, ok := toLiveKey(instr.Result); ok {
				delete(known, k)
			}
		}
	}
	return changed
}

func substitute(known map[liveKey]tac.Operand, op *tac.Operand) bool {
	k, ok := toLiveKey(*op)
	if !ok {
		return false
	}
	val, ok := known[k]
	if !ok {
		return false
	}
	*op = val
	return true
}
