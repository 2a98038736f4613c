// Package irbuild lowers a type-checked NatureLang AST into the
// three-address code pkg/tac defines. It assumes pkg/semantic has already
// annotated every expression's type; it does not re-check anything.
package irbuild

import (
	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

// loopCtx tracks the jump targets break/continue resolve to inside the
// loop currently being lowered.
type loopCtx struct {
	continueLabel int
	breakLabel    int
}

// Builder holds the mutable state of one lowering pass: the program being
// built, the function currently receiving instructions, and the stack of
// enclosing loops.
type Builder struct {
	prog  *tac.Program
	fn    *tac.Function
	loops []loopCtx
}

// Build lowers prog into three-address code.
func Build(prog *ast.Program) *tac.Program {
	b := &Builder{prog: tac.NewProgram()}
	b.fn = b.prog.Main
	b.lowerTopLevel(prog.Statements)
	return b.prog
}

func (b *Builder) lowerTopLevel(stmts []ast.Stmt) {
	for _, s := range stmts {
		if fn, ok := s.(*ast.FuncDecl); ok {
			b.lowerFuncDecl(fn)
			continue
		}
		b.lowerStmt(s)
	}
}

func (b *Builder) lowerFuncDecl(decl *ast.FuncDecl) {
	params := make([]tac.Param, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = tac.Param{Name: p.Name, Type: p.DeclaredType}
	}
	fn := tac.NewFunction(decl.Name, params, decl.ReturnType)
	b.prog.AddFunction(fn)

	outer := b.fn
	b.fn = fn
	b.fn.Emit(tac.OpFuncBegin, tac.None, tac.FuncOperand(decl.Name), tac.None, tac.None, decl.Pos().FirstLine)
	b.lowerStmts(decl.Body.Statements)
	b.fn.Emit(tac.OpFuncEnd, tac.None, tac.FuncOperand(decl.Name), tac.None, tac.None, decl.Pos().FirstLine)
	b.fn = outer
}

func (b *Builder) newTemp(t ast.DataType) tac.Operand {
	return tac.Temp(b.prog.NewTemp(), t)
}

func (b *Builder) newLabel() int {
	return b.prog.NewLabel()
}

func line(n ast.Node) int { return n.Pos().FirstLine }
