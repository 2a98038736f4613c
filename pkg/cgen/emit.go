package cgen

import (
	"fmt"
	"strings"

	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

func (g *generator) printDeclarations(fn *tac.Function, d *declTypes) {
	if d.needsInputBuffer {
		g.printf("  static char __nl_input[4096];\n")
	}
	for _, temp := range d.temps {
		t := d.tempType[temp]
		g.printf("  %s t%d = %s;\n", cType(t), temp, zeroLiteral(t))
	}
	for _, name := range d.vars {
		t := d.varType[name]
		g.printf("  %s %s = %s;\n", cType(t), sanitizeIdent(name), zeroLiteral(t))
	}
}

func (g *generator) printBody(fn *tac.Function, d *declTypes) {
	var pendingArgs []string
	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Dead {
			continue
		}
		switch instr.Opcode {
		case tac.OpFuncBegin, tac.OpFuncEnd, tac.OpScopeBegin, tac.OpScopeEnd:
			// Pure bookkeeping markers; the C function body's braces
			// already delimit scope.
			continue
		case tac.OpSecureBegin:
			// Secure zones add no runtime check; they appear in the C
			// output as comments only.
			g.printf("  /* secure zone */\n")
		case tac.OpSecureEnd:
			g.printf("  /* end secure zone */\n")
		case tac.OpLabel:
			g.printf(" L%d:;\n", instr.Arg1.Label)
		case tac.OpGoto:
			g.printf("  goto L%d;\n", instr.Arg1.Label)
		case tac.OpIfGoto:
			g.printf("  if (%s) goto L%d;\n", g.operand(instr.Arg1), instr.Arg2.Label)
		case tac.OpIfFalseGoto:
			g.printf("  if (!(%s)) goto L%d;\n", g.operand(instr.Arg1), instr.Arg2.Label)
		case tac.OpParam:
			pendingArgs = append(pendingArgs, g.operand(instr.Arg1))
		case tac.OpCall:
			arity := int(instr.Arg2.IntVal)
			args := pendingArgs[len(pendingArgs)-arity:]
			pendingArgs = pendingArgs[:len(pendingArgs)-arity]
			call := fmt.Sprintf("%s(%s)", sanitizeIdent(instr.Arg1.Name), strings.Join(args, ", "))
			if instr.Result.Kind == tac.OperandNone {
				g.printf("  %s;\n", call)
			} else {
				g.printf("  %s = %s;\n", g.operand(instr.Result), call)
			}
		case tac.OpReturn:
			if instr.Arg1.Kind == tac.OperandNone {
				g.printf("  return;\n")
			} else {
				g.printf("  return %s;\n", g.operand(instr.Arg1))
			}
		case tac.OpDisplay:
			g.printDisplay(instr.Arg1)
		case tac.OpAsk:
			if instr.Arg1.Kind != tac.OperandNone {
				format := printfFormat(instr.Arg1.Type)
				g.printf("  printf(\"%s\", %s);\n", format, g.operand(instr.Arg1))
			}
			g.printReadLine(instr.Result)
		case tac.OpRead:
			g.printReadLine(instr.Result)
		case tac.OpListCreate:
			g.printf("  %s = nl_list_create(0);\n", g.operand(instr.Result))
		case tac.OpListAppend:
			g.printf("  nl_list_append(%s, %s);\n", g.operand(instr.Arg1), g.operand(instr.Arg2))
		case tac.OpListGet:
			g.printf("  %s = nl_list_get_num(%s, %s);\n", g.operand(instr.Result), g.operand(instr.Arg1), g.operand(instr.Arg2))
		case tac.OpListSet:
			g.printf("  nl_list_set(%s, %s, %s);\n", g.operand(instr.Arg1), g.operand(instr.Arg2), g.operand(instr.Arg3))
		case tac.OpListLen:
			g.printf("  %s = __list_length(%s);\n", g.operand(instr.Result), g.operand(instr.Arg1))
		case tac.OpConcat:
			g.printf("  %s = nl_concat(%s, %s);\n", g.operand(instr.Result), g.textOperand(instr.Arg1), g.textOperand(instr.Arg2))
		case tac.OpPow:
			g.printf("  %s = pow(%s, %s);\n", g.operand(instr.Result), g.operand(instr.Arg1), g.operand(instr.Arg2))
		case tac.OpBetween:
			g.printf("  %s = (%s >= %s && %s <= %s);\n", g.operand(instr.Result),
				g.operand(instr.Arg1), g.operand(instr.Arg2), g.operand(instr.Arg1), g.operand(instr.Arg3))
		case tac.OpAssign:
			g.printf("  %s = %s;\n", g.operand(instr.Result), g.operand(instr.Arg1))
		case tac.OpNeg:
			g.printf("  %s = -%s;\n", g.operand(instr.Result), g.operand(instr.Arg1))
		case tac.OpPos:
			g.printf("  %s = +%s;\n", g.operand(instr.Result), g.operand(instr.Arg1))
		case tac.OpNot:
			g.printf("  %s = !%s;\n", g.operand(instr.Result), g.operand(instr.Arg1))
		default:
			if sym, ok := binaryCOperator(instr.Opcode); ok {
				g.printf("  %s = %s %s %s;\n", g.operand(instr.Result), g.operand(instr.Arg1), sym, g.operand(instr.Arg2))
			}
		}
	}
}

func (g *generator) printDisplay(arg tac.Operand) {
	format := printfFormat(arg.Type)
	if arg.Type == ast.Flag {
		g.printf("  printf(\"%s\\n\", (%s) ? \"yes\" : \"no\");\n", format, g.operand(arg))
		return
	}
	g.printf("  printf(\"%s\\n\", %s);\n", format, g.operand(arg))
}

// printReadLine reads one line of stdin into the function's shared input
// buffer, strips the trailing newline, and duplicates it into result.
func (g *generator) printReadLine(result tac.Operand) {
	g.printf("  fgets(__nl_input, sizeof __nl_input, stdin);\n")
	g.printf("  __nl_input[strcspn(__nl_input, \"\\n\")] = 0;\n")
	g.printf("  %s = strdup(__nl_input);\n", g.operand(result))
}

// binaryCOperator maps a TAC opcode to its C infix operator, for the
// handful of opcodes whose C translation is a plain binary expression.
func binaryCOperator(op tac.Opcode) (string, bool) {
	switch op {
	case tac.OpAdd:
		return "+", true
	case tac.OpSub:
		return "-", true
	case tac.OpMul:
		return "*", true
	case tac.OpDiv:
		return "/", true
	case tac.OpMod:
		return "%", true
	case tac.OpEq:
		return "==", true
	case tac.OpNeq:
		return "!=", true
	case tac.OpLt:
		return "<", true
	case tac.OpGt:
		return ">", true
	case tac.OpLte:
		return "<=", true
	case tac.OpGte:
		return ">=", true
	case tac.OpAnd:
		return "&&", true
	case tac.OpOr:
		return "||", true
	default:
		return "", false
	}
}

// textOperand renders op as a C expression of type const char *, wrapping
// a non-text operand in the runtime's stringification helper for its type.
func (g *generator) textOperand(op tac.Operand) string {
	expr := g.operand(op)
	switch op.Type {
	case ast.Text:
		return expr
	case ast.Decimal:
		return fmt.Sprintf("nl_float_to_str(%s)", expr)
	case ast.Flag:
		return fmt.Sprintf("nl_bool_to_str(%s)", expr)
	default:
		return fmt.Sprintf("nl_int_to_str(%s)", expr)
	}
}

// operand renders op as a C expression.
func (g *generator) operand(op tac.Operand) string {
	switch op.Kind {
	case tac.OperandTemp:
		return fmt.Sprintf("t%d", op.Temp)
	case tac.OperandVar:
		return sanitizeIdent(op.Name)
	case tac.OperandIntConst:
		return fmt.Sprintf("%d", op.IntVal)
	case tac.OperandFloatConst:
		return fmt.Sprintf("%v", op.FltVal)
	case tac.OperandStringConst:
		return fmt.Sprintf("\"%s\"", escapeString(op.StrVal))
	case tac.OperandBoolConst:
		if op.BoolVal() {
			return "true"
		}
		return "false"
	case tac.OperandFunc:
		return sanitizeIdent(op.Name)
	default:
		return "0"
	}
}
