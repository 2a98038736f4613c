package tac

// Emit appends a new instruction built from the given fields to fn and
// returns it, the building block every pkg/irbuild lowering call goes
// through.
func (fn *Function) Emit(op Opcode, result, arg1, arg2, arg3 Operand, line int) *Instr {
	return fn.Append(&Instr{Opcode: op, Result: result, Arg1: arg1, Arg2: arg2, Arg3: arg3, Line: line})
}

// EmitLabel emits an OpLabel instruction defining lbl at this point.
func (fn *Function) EmitLabel(lbl int, line int) *Instr {
	return fn.Emit(OpLabel, None, LabelOperand(lbl), None, None, line)
}

// EmitGoto emits an unconditional jump to lbl.
func (fn *Function) EmitGoto(lbl int, line int) *Instr {
	return fn.Emit(OpGoto, None, LabelOperand(lbl), None, None, line)
}

// EmitIfGoto emits a jump to lbl taken when cond is truthy.
func (fn *Function) EmitIfGoto(cond Operand, lbl int, line int) *Instr {
	return fn.Emit(OpIfGoto, None, cond, LabelOperand(lbl), None, line)
}

// EmitIfFalseGoto emits a jump to lbl taken when cond is falsy.
func (fn *Function) EmitIfFalseGoto(cond Operand, lbl int, line int) *Instr {
	return fn.Emit(OpIfFalseGoto, None, cond, LabelOperand(lbl), None, line)
}
