package optimize

import "github.com/naturelang/naturec/pkg/tac"

// eliminateDeadCode walks fn backward, tracking which temps and variables
// are still needed ("live"), and marks any pure instruction whose result is
// never subsequently used as Dead. A result that some live instruction
// anywhere in fn reads is kept too, so a value carried around a loop's
// back-edge survives, and writes to named variables are never removed.
// It does not remove instructions from the list — fn.Sweep does that once
// the fixpoint is reached, so a later pass in the same iteration can still
// see accurate Prev/Next links.
func eliminateDeadCode(fn *tac.Function, stats *Stats) bool {
	changed := false
	live := make(map[liveKey]bool)

	instrs := fn.Instrs()
	readAnywhere := make(map[liveKey]bool)
	for _, instr := range instrs {
		if !instr.Dead {
			markLive(readAnywhere, instr.Arg1)
			markLive(readAnywhere, instr.Arg2)
			markLive(readAnywhere, instr.Arg3)
		}
	}
	for i := len(instrs) - 1; i >= 0; i-- {
		instr := instrs[i]
		if instr.Dead {
			continue
		}

		if hasSideEffect(instr.Opcode) || instr.Result.Kind == tac.OperandNone || instr.Result.Kind == tac.OperandVar {
			markLive(live, instr.Arg1)
			markLive(live, instr.Arg2)
			markLive(live, instr.Arg3)
			continue
		}

		if !isLive(live, instr.Result) && !isLive(readAnywhere, instr.Result) {
			instr.Dead = true
			stats.DeadInstructionsEliminated++
			changed = true
			continue
		}

		clearLive(live, instr.Result)
		markLive(live, instr.Arg1)
		markLive(live, instr.Arg2)
		markLive(live, instr.Arg3)
	}
	return changed
}

type liveKey struct {
	kind tac.OperandKind
	temp int
	name string
}

func toLiveKey(op tac.Operand) (liveKey, bool) {
	switch op.Kind {
	case tac.OperandTemp:
		return liveKey{kind: tac.OperandTemp, temp: op.Temp}, true
	case tac.OperandVar:
		return liveKey{kind: tac.OperandVar, name: op.Name}, true
	default:
		return liveKey{}, false
	}
}

func markLive(live map[liveKey]bool, op tac.Operand) {
	if k, ok := toLiveKey(op); ok {
		live[k] = true
	}
}

func clearLive(live map[liveKey]bool, op tac.Operand) {
	if k, ok := toLiveKey(op); ok {
		delete(live, k)
	}
}

func isLive(live map[liveKey]bool, op tac.Operand) bool {
	k, ok := toLiveKey(op)
	if !ok {
		return true // a non-temp/var result (shouldn't happen) is kept
	}
	return live[k]
}

// hasSideEffect reports whether op must run regardless of whether its
// result is used: control flow, I/O, calls, scope/security markers, and
// list/variable mutation.
func hasSideEffect(op tac.Opcode) bool {
	switch op {
	case tac.OpLabel, tac.OpGoto, tac.OpIfGoto, tac.OpIfFalseGoto,
		tac.OpFuncBegin, tac.OpFuncEnd, tac.OpParam, tac.OpCall, tac.OpReturn,
		tac.OpDisplay, tac.OpAsk, tac.OpRead,
		tac.OpScopeBegin, tac.OpScopeEnd, tac.OpSecureBegin, tac.OpSecureEnd,
		tac.OpListAppend, tac.OpListSet:
		return true
	default:
		return false
	}
}
