// Package cgen lowers optimized three-address code into C99 source,
// NatureLang's only compilation target. Generation is two passes per
// function: synthesizeTypes walks every instruction once to learn the C
// type of each temp and variable, then emit walks the list again to print
// declarations and statements.
package cgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/naturelang/naturec/pkg/tac"
)

// Options controls details of the emitted C source. It is currently
// empty; cmd/naturec holds it by value so a future knob (e.g. selecting
// a different runtime header path) doesn't ripple through call sites.
type Options struct{}

// Generate writes prog as a complete C translation unit to w.
func Generate(prog *tac.Program, w io.Writer, opts Options) error {
	g := &generator{w: w, opts: opts}
	return g.run(prog)
}

type generator struct {
	w        io.Writer
	opts     Options
	err      error
	needsMath bool
}

func (g *generator) run(prog *tac.Program) error {
	g.needsMath = programUsesPow(prog)
	g.printHeader()
	g.printForwardDecls(prog)
	for _, fn := range prog.Functions {
		g.printFunction(fn)
		g.printf("\n")
	}
	g.printMainFunction(prog.Main)
	return g.err
}

func (g *generator) printf(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	if _, err := fmt.Fprintf(g.w, format, args...); err != nil {
		g.err = err
	}
}

// programUsesPow reports whether any function (including the implicit
// main) still contains a Pow instruction, so the header can conditionally
// pull in math.h the way a hand-written C file would.
func programUsesPow(prog *tac.Program) bool {
	for _, fn := range prog.AllFunctions() {
		for instr := fn.First; instr != nil; instr = instr.Next {
			if !instr.Dead && instr.Opcode == tac.OpPow {
				return true
			}
		}
	}
	return false
}

func (g *generator) printHeader() {
	g.printf("#include <stdio.h>\n")
	g.printf("#include <stdlib.h>\n")
	g.printf("#include <string.h>\n")
	g.printf("#include <stdbool.h>\n")
	if g.needsMath {
		g.printf("#include <math.h>\n")
	}
	g.printf("#include \"naturelang_runtime.h\"\n\n")
}

func (g *generator) printForwardDecls(prog *tac.Program) {
	for _, fn := range prog.Functions {
		g.printf("%s;\n", signature(fn))
	}
	if len(prog.Functions) > 0 {
		g.printf("\n")
	}
}

func signature(fn *tac.Function) string {
	var b strings.Builder
	b.WriteString(cReturnType(fn.ReturnType))
	b.WriteByte(' ')
	b.WriteString(sanitizeIdent(fn.Name))
	b.WriteByte('(')
	if len(fn.Params) == 0 {
		b.WriteString("void")
	}
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cType(p.Type))
		b.WriteByte(' ')
		b.WriteString(sanitizeIdent(p.Name))
	}
	b.WriteByte(')')
	return b.String()
}

func (g *generator) printFunction(fn *tac.Function) {
	types := synthesizeTypes(fn)
	g.printf("%s {\n", signature(fn))
	g.printDeclarations(fn, types)
	g.printBody(fn, types)
	g.printf("}\n")
}

// printMainFunction wraps the implicit top-level statement list (the
// lowered program's Main function) in C's own main, returning 0.
func (g *generator) printMainFunction(main *tac.Function) {
	types := synthesizeTypes(main)
	g.printf("int main(int argc, char *argv[]) {\n")
	g.printf("  (void)argc;\n")
	g.printf("  (void)argv;\n")
	g.printDeclarations(main, types)
	g.printBody(main, types)
	g.printf("  return 0;\n")
	g.printf("}\n")
}
