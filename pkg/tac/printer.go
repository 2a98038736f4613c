package tac

import (
	"fmt"
	"io"
)

// Printer renders a Program as human-readable three-address code, one
// instruction per line, for the cmd/naturec "-dtac" debug dump.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints every function in prog.
func (p *Printer) PrintProgram(prog *Program) {
	for i, fn := range prog.AllFunctions() {
		p.PrintFunction(fn)
		if i < len(prog.AllFunctions())-1 {
			fmt.Fprintln(p.w)
		}
	}
}

// PrintFunction prints one function's signature and instruction list.
func (p *Printer) PrintFunction(fn *Function) {
	fmt.Fprintf(p.w, "%s(", fn.Name)
	for i, param := range fn.Params {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		fmt.Fprintf(p.w, "%s:%s", param.Name, param.Type)
	}
	fmt.Fprintf(p.w, ") -> %s {\n", fn.ReturnType)
	for instr := fn.First; instr != nil; instr = instr.Next {
		fmt.Fprint(p.w, "  ")
		p.printInstr(instr)
		fmt.Fprintln(p.w)
	}
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printInstr(instr *Instr) {
	if instr.Dead {
		fmt.Fprint(p.w, "; ")
	}
	switch instr.Opcode {
	case OpLabel:
		fmt.Fprintf(p.w, "L%d:", instr.Arg1.Label)
		return
	case OpGoto:
		fmt.Fprintf(p.w, "goto L%d", instr.Arg1.Label)
		return
	case OpIfGoto:
		fmt.Fprintf(p.w, "if %s goto L%d", p.operand(instr.Arg1), instr.Arg2.Label)
		return
	case OpIfFalseGoto:
		fmt.Fprintf(p.w, "if_false %s goto L%d", p.operand(instr.Arg1), instr.Arg2.Label)
		return
	case OpFuncBegin:
		fmt.Fprintf(p.w, "func_begin %s", instr.Arg1.Name)
		return
	case OpFuncEnd:
		fmt.Fprintf(p.w, "func_end %s", instr.Arg1.Name)
		return
	case OpParam:
		fmt.Fprintf(p.w, "param %s", p.operand(instr.Arg1))
		return
	case OpReturn:
		if instr.Arg1.Kind == OperandNone {
			fmt.Fprint(p.w, "return")
		} else {
			fmt.Fprintf(p.w, "return %s", p.operand(instr.Arg1))
		}
		return
	case OpDisplay:
		fmt.Fprintf(p.w, "display %s", p.operand(instr.Arg1))
		return
	case OpScopeBegin:
		fmt.Fprint(p.w, "scope_begin")
		return
	case OpScopeEnd:
		fmt.Fprint(p.w, "scope_end")
		return
	case OpSecureBegin:
		fmt.Fprint(p.w, "secure_begin")
		return
	case OpSecureEnd:
		fmt.Fprint(p.w, "secure_end")
		return
	}

	if instr.Result.Kind != OperandNone {
		fmt.Fprintf(p.w, "%s = ", p.operand(instr.Result))
	}
	switch instr.Opcode {
	case OpAssign:
		fmt.Fprint(p.w, p.operand(instr.Arg1))
	case OpCall:
		fmt.Fprintf(p.w, "call %s/%d", instr.Arg1.Name, instr.Arg2.IntVal)
	case OpAsk:
		if instr.Arg1.Kind == OperandNone {
			fmt.Fprint(p.w, "ask")
		} else {
			fmt.Fprintf(p.w, "ask %s", p.operand(instr.Arg1))
		}
	case OpRead:
		fmt.Fprint(p.w, "read")
	case OpBetween:
		fmt.Fprintf(p.w, "%s between %s .. %s", p.operand(instr.Arg1), p.operand(instr.Arg2), p.operand(instr.Arg3))
	case OpListCreate:
		fmt.Fprint(p.w, "list_create")
	case OpListAppend:
		fmt.Fprintf(p.w, "%s.append(%s)", p.operand(instr.Arg1), p.operand(instr.Arg2))
	case OpListGet:
		fmt.Fprintf(p.w, "%s[%s]", p.operand(instr.Arg1), p.operand(instr.Arg2))
	case OpListSet:
		fmt.Fprintf(p.w, "%s[%s] = %s", p.operand(instr.Arg1), p.operand(instr.Arg2), p.operand(instr.Arg3))
	case OpListLen:
		fmt.Fprintf(p.w, "len(%s)", p.operand(instr.Arg1))
	case OpNeg, OpPos, OpNot:
		fmt.Fprintf(p.w, "%s %s", instr.Opcode, p.operand(instr.Arg1))
	default:
		if instr.Arg2.Kind == OperandNone {
			fmt.Fprintf(p.w, "%s %s", instr.Opcode, p.operand(instr.Arg1))
		} else {
			fmt.Fprintf(p.w, "%s %s %s", p.operand(instr.Arg1), instr.Opcode, p.operand(instr.Arg2))
		}
	}
}

func (p *Printer) operand(op Operand) string {
	switch op.Kind {
	case OperandTemp:
		return fmt.Sprintf("t%d", op.Temp)
	case OperandVar:
		return op.Name
	case OperandIntConst:
		return fmt.Sprintf("%d", op.IntVal)
	case OperandFloatConst:
		return fmt.Sprintf("%v", op.FltVal)
	case OperandStringConst:
		return fmt.Sprintf("%q", op.StrVal)
	case OperandBoolConst:
		return fmt.Sprintf("%v", op.BoolVal())
	case OperandLabel:
		return fmt.Sprintf("L%d", op.Label)
	case OperandFunc:
		return op.Name
	default:
		return "_"
	}
}
