package cgen

import (
	"sort"

	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

// declTypes is the synthesized result of synthesizeTypes: every temp and
// local variable a function's body defines, with the C type its
// declaration needs, plus the stable order to emit them in.
type declTypes struct {
	tempType         map[int]ast.DataType
	varType          map[string]ast.DataType
	temps            []int
	vars             []string
	params           map[string]bool
	needsInputBuffer bool
}

// synthesizeTypes is codegen's first pass: it never emits anything, only
// learns the type each instruction's Result operand carries, so the
// second pass can print every declaration before the first statement that
// uses it — C, unlike NatureLang, has no forward type inference.
func synthesizeTypes(fn *tac.Function) *declTypes {
	d := &declTypes{
		tempType: make(map[int]ast.DataType),
		varType:  make(map[string]ast.DataType),
		params:   make(map[string]bool),
	}
	for _, p := range fn.Params {
		d.params[p.Name] = true
	}

	for instr := fn.First; instr != nil; instr = instr.Next {
		if instr.Opcode == tac.OpAsk || instr.Opcode == tac.OpRead {
			d.needsInputBuffer = true
		}
		switch instr.Result.Kind {
		case tac.OperandTemp:
			if _, seen := d.tempType[instr.Result.Temp]; !seen {
				d.temps = append(d.temps, instr.Result.Temp)
			}
			d.tempType[instr.Result.Temp] = instr.Result.Type
		case tac.OperandVar:
			if d.params[instr.Result.Name] {
				continue
			}
			if _, seen := d.varType[instr.Result.Name]; !seen {
				d.vars = append(d.vars, instr.Result.Name)
			}
			d.varType[instr.Result.Name] = instr.Result.Type
		}
	}

	sort.Ints(d.temps)
	sort.Strings(d.vars)
	return d
}
