package irbuild

import (
	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

func (b *Builder) lowerStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		b.lowerStmt(s)
	}
}

func (b *Builder) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		b.lowerVarDecl(n)
	case *ast.FuncDecl:
		b.lowerFuncDecl(n)
	case *ast.Block:
		b.fn.Emit(tac.OpScopeBegin, tac.None, tac.None, tac.None, tac.None, line(n))
		b.lowerStmts(n.Statements)
		b.fn.Emit(tac.OpScopeEnd, tac.None, tac.None, tac.None, tac.None, line(n))
	case *ast.Assign:
		b.lowerAssign(n)
	case *ast.If:
		b.lowerIf(n)
	case *ast.While:
		b.lowerWhile(n)
	case *ast.Repeat:
		b.lowerRepeat(n)
	case *ast.ForEach:
		b.lowerForEach(n)
	case *ast.Return:
		b.lowerReturn(n)
	case *ast.Break:
		if len(b.loops) > 0 {
			b.fn.EmitGoto(b.currentLoop().breakLabel, line(n))
		}
	case *ast.Continue:
		if len(b.loops) > 0 {
			b.fn.EmitGoto(b.currentLoop().continueLabel, line(n))
		}
	case *ast.ExprStmt:
		b.lowerExpr(n.X)
	case *ast.Display:
		val := b.lowerExpr(n.Value)
		b.fn.Emit(tac.OpDisplay, tac.None, val, tac.None, tac.None, line(n))
	case *ast.Ask:
		prompt := tac.None
		if n.Prompt != nil {
			prompt = b.lowerExpr(n.Prompt)
		}
		b.fn.Emit(tac.OpAsk, tac.Var(n.Target, ast.Text), prompt, tac.None, tac.None, line(n))
	case *ast.Read:
		b.fn.Emit(tac.OpRead, tac.Var(n.Target, ast.Text), tac.None, tac.None, tac.None, line(n))
	case *ast.SecureZone:
		b.fn.Emit(tac.OpSecureBegin, tac.None, tac.None, tac.None, tac.None, line(n))
		b.lowerStmt(n.Body)
		b.fn.Emit(tac.OpSecureEnd, tac.None, tac.None, tac.None, tac.None, line(n))
	}
}

func (b *Builder) currentLoop() loopCtx {
	return b.loops[len(b.loops)-1]
}

func (b *Builder) pushLoop(l loopCtx) { b.loops = append(b.loops, l) }
func (b *Builder) popLoop()           { b.loops = b.loops[:len(b.loops)-1] }

func (b *Builder) lowerVarDecl(n *ast.VarDecl) {
	typ := n.DeclaredType
	if typ == ast.Unknown && n.Init != nil {
		typ = n.Init.Type()
	}
	var value tac.Operand
	if n.Init != nil {
		value = b.lowerExpr(n.Init)
	} else {
		value = zeroValue(typ)
	}
	b.fn.Emit(tac.OpAssign, tac.Var(n.Name, typ), value, tac.None, tac.None, line(n))
}

func zeroValue(t ast.DataType) tac.Operand {
	switch t {
	case ast.Decimal:
		return tac.FloatConst(0)
	case ast.Text:
		return tac.StringConst("")
	case ast.Flag:
		return tac.BoolConst(false)
	default:
		return tac.IntConst(0)
	}
}

func (b *Builder) lowerAssign(n *ast.Assign) {
	value := b.lowerExpr(n.Value)
	switch target := n.Target.(type) {
	case *ast.Identifier:
		b.fn.Emit(tac.OpAssign, tac.Var(target.Name, target.Type()), value, tac.None, tac.None, line(n))
	case *ast.Index:
		arr := b.lowerExpr(target.Array)
		idx := b.lowerExpr(target.IndexExpr)
		b.fn.Emit(tac.OpListSet, tac.None, arr, idx, value, line(n))
	}
}

func (b *Builder) lowerIf(n *ast.If) {
	cond := b.lowerExpr(n.Cond)
	elseLbl := b.newLabel()
	endLbl := b.newLabel()
	b.fn.EmitIfFalseGoto(cond, elseLbl, line(n))
	b.lowerStmt(n.Then)
	b.fn.EmitGoto(endLbl, line(n))
	b.fn.EmitLabel(elseLbl, line(n))
	if n.Else != nil {
		b.lowerStmt(n.Else)
	}
	b.fn.EmitLabel(endLbl, line(n))
}

func (b *Builder) lowerWhile(n *ast.While) {
	startLbl := b.newLabel()
	endLbl := b.newLabel()
	b.pushLoop(loopCtx{continueLabel: startLbl, breakLabel: endLbl})

	b.fn.EmitLabel(startLbl, line(n))
	cond := b.lowerExpr(n.Cond)
	b.fn.EmitIfFalseGoto(cond, endLbl, line(n))
	b.lowerStmt(n.Body)
	b.fn.EmitGoto(startLbl, line(n))
	b.fn.EmitLabel(endLbl, line(n))

	b.popLoop()
}

func (b *Builder) lowerRepeat(n *ast.Repeat) {
	count := b.lowerExpr(n.Count)
	counter := b.newTemp(ast.Number)
	b.fn.Emit(tac.OpAssign, counter, tac.IntConst(0), tac.None, tac.None, line(n))

	startLbl := b.newLabel()
	incrLbl := b.newLabel()
	endLbl := b.newLabel()
	b.pushLoop(loopCtx{continueLabel: incrLbl, breakLabel: endLbl})

	b.fn.EmitLabel(startLbl, line(n))
	cond := b.newTemp(ast.Flag)
	b.fn.Emit(tac.OpLt, cond, counter, count, tac.None, line(n))
	b.fn.EmitIfFalseGoto(cond, endLbl, line(n))
	b.lowerStmt(n.Body)
	b.fn.EmitLabel(incrLbl, line(n))
	b.fn.Emit(tac.OpAdd, counter, counter, tac.IntConst(1), tac.None, line(n))
	b.fn.EmitGoto(startLbl, line(n))
	b.fn.EmitLabel(endLbl, line(n))

	b.popLoop()
}

func (b *Builder) lowerForEach(n *ast.ForEach) {
	iterable := b.lowerExpr(n.Iterable)

	length := b.newTemp(ast.Number)
	b.fn.Emit(tac.OpListLen, length, iterable, tac.None, tac.None, line(n))

	idx := b.newTemp(ast.Number)
	b.fn.Emit(tac.OpAssign, idx, tac.IntConst(0), tac.None, tac.None, line(n))

	startLbl := b.newLabel()
	incrLbl := b.newLabel()
	endLbl := b.newLabel()
	b.pushLoop(loopCtx{continueLabel: incrLbl, breakLabel: endLbl})

	b.fn.EmitLabel(startLbl, line(n))
	cond := b.newTemp(ast.Flag)
	b.fn.Emit(tac.OpLt, cond, idx, length, tac.None, line(n))
	b.fn.EmitIfFalseGoto(cond, endLbl, line(n))

	// Mirrors analyzeForEach's element-type annotation: a Text iterable
	// yields Text characters, anything else (List, Unknown) yields Unknown.
	elemType := ast.Unknown
	if n.Iterable.Type() == ast.Text {
		elemType = ast.Text
	}
	b.fn.Emit(tac.OpListGet, tac.Var(n.IteratorName, elemType), iterable, idx, tac.None, line(n))
	b.lowerStmt(n.Body)
	b.fn.EmitLabel(incrLbl, line(n))
	b.fn.Emit(tac.OpAdd, idx, idx, tac.IntConst(1), tac.None, line(n))
	b.fn.EmitGoto(startLbl, line(n))
	b.fn.EmitLabel(endLbl, line(n))

	b.popLoop()
}

func (b *Builder) lowerReturn(n *ast.Return) {
	if n.Value == nil {
		b.fn.Emit(tac.OpReturn, tac.None, tac.None, tac.None, tac.None, line(n))
		return
	}
	val := b.lowerExpr(n.Value)
	b.fn.Emit(tac.OpReturn, tac.None, val, tac.None, tac.None, line(n))
}
