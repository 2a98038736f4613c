package semantic

import (
	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/symtab"
)

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(n)
	case *ast.FuncDecl:
		a.analyzeFuncDecl(n)
	case *ast.Block:
		a.table.EnterScope()
		a.analyzeStmts(n.Statements)
		a.table.ExitScope()
	case *ast.Assign:
		a.analyzeAssign(n)
	case *ast.If:
		a.analyzeIf(n)
	case *ast.While:
		a.analyzeWhile(n)
	case *ast.Repeat:
		a.analyzeRepeat(n)
	case *ast.ForEach:
		a.analyzeForEach(n)
	case *ast.Return:
		a.analyzeReturn(n)
	case *ast.Break:
		if !a.table.InLoop() {
			a.error(n.Pos(), "break used outside of a loop")
		}
	case *ast.Continue:
		if !a.table.InLoop() {
			a.error(n.Pos(), "continue used outside of a loop")
		}
	case *ast.ExprStmt:
		a.analyzeExpr(n.X)
	case *ast.Display:
		a.analyzeExpr(n.Value)
	case *ast.Ask:
		a.analyzeAsk(n)
	case *ast.Read:
		a.analyzeRead(n)
	case *ast.SecureZone:
		a.table.EnterSecureScope()
		a.analyzeStmt(n.Body)
		a.table.ExitScope()
	default:
		a.error(s.Pos(), "internal: unhandled statement type %T", s)
	}
}

func (a *Analyzer) analyzeStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.analyzeStmt(s)
	}
}

func (a *Analyzer) analyzeVarDecl(n *ast.VarDecl) {
	initialized := n.Init != nil
	declType := n.DeclaredType
	if n.Init != nil {
		initType := a.analyzeExpr(n.Init)
		if declType == ast.Unknown {
			declType = initType
		} else if !TypesCompatible(declType, initType) {
			a.error(n.Pos(), "cannot initialize %q of type %s with a value of type %s", n.Name, declType, initType)
		}
	}
	if declType == ast.Unknown {
		declType = ast.Number
	}
	if _, err := a.table.DeclareVariable(n.Name, declType, n.IsConst, n.Pos(), initialized); err != nil {
		a.error(n.Pos(), "%v", err)
	}
}

func (a *Analyzer) analyzeFuncDecl(n *ast.FuncDecl) {
	a.table.EnterFunctionScope(n.ReturnType)
	for _, p := range n.Params {
		if _, err := a.table.DeclareParameter(p.Name, p.DeclaredType, p.Pos()); err != nil {
			a.error(p.Pos(), "%v", err)
		}
	}
	a.analyzeStmts(n.Body.Statements)
	a.table.ExitScope()
}

func (a *Analyzer) analyzeAssign(n *ast.Assign) {
	valType := a.analyzeExpr(n.Value)
	switch target := n.Target.(type) {
	case *ast.Identifier:
		sym := a.table.Lookup(target.Name)
		if sym == nil {
			a.error(n.Pos(), "%q is not declared", target.Name)
			target.SetType(ast.Error)
			return
		}
		if sym.Kind == symtab.Constant && sym.Initialized {
			a.error(n.Pos(), "cannot assign to constant %q", target.Name)
		}
		if !TypesCompatible(sym.Type, valType) {
			a.error(n.Pos(), "cannot assign a value of type %s to %q of type %s", valType, target.Name, sym.Type)
		}
		target.SetType(sym.Type)
		symtab.MarkInitialized(sym)
	case *ast.Index:
		a.analyzeExpr(target)
	default:
		a.error(n.Pos(), "invalid assignment target")
	}
}

func (a *Analyzer) analyzeIf(n *ast.If) {
	condType := a.analyzeExpr(n.Cond)
	if !IsBoolean(condType) && condType != ast.Unknown && condType != ast.Error {
		a.error(n.Cond.Pos(), "if condition must be a flag, got %s", condType)
	}
	a.analyzeStmt(n.Then)
	if n.Else != nil {
		a.analyzeStmt(n.Else)
	}
}

func (a *Analyzer) analyzeWhile(n *ast.While) {
	condType := a.analyzeExpr(n.Cond)
	if !IsBoolean(condType) && condType != ast.Unknown && condType != ast.Error {
		a.error(n.Cond.Pos(), "while condition must be a flag, got %s", condType)
	}
	a.table.EnterLoopScope()
	a.analyzeStmts(n.Body.Statements)
	a.table.ExitScope()
}

func (a *Analyzer) analyzeRepeat(n *ast.Repeat) {
	countType := a.analyzeExpr(n.Count)
	if !IsNumeric(countType) && countType != ast.Unknown && countType != ast.Error {
		a.error(n.Count.Pos(), "repeat count must be a number, got %s", countType)
	}
	a.table.EnterLoopScope()
	a.analyzeStmts(n.Body.Statements)
	a.table.ExitScope()
}

func (a *Analyzer) analyzeForEach(n *ast.ForEach) {
	iterType := a.analyzeExpr(n.Iterable)
	if iterType != ast.List && iterType != ast.Text && iterType != ast.Unknown && iterType != ast.Error {
		a.error(n.Iterable.Pos(), "for each requires a list or text, got %s", iterType)
	}
	a.table.EnterLoopScope()
	// The AST has no per-list element type, so a List iterable's element
	// is annotated Unknown; a Text iterable's element is the character
	// it yields, annotated Text (spec.md §4.1). pkg/irbuild's lowering
	// follows this annotation rather than re-deriving it.
	elemType := ast.Unknown
	if iterType == ast.Text {
		elemType = ast.Text
	}
	if _, err := a.table.DeclareVariable(n.IteratorName, elemType, false, n.Pos(), true); err != nil {
		a.error(n.Pos(), "%v", err)
	}
	a.analyzeStmts(n.Body.Statements)
	a.table.ExitScope()
}

func (a *Analyzer) analyzeReturn(n *ast.Return) {
	if !a.table.InFunction() {
		a.error(n.Pos(), "return used outside of a function")
		return
	}
	expected := a.table.ReturnType()
	if n.Value == nil {
		if expected != ast.Nothing {
			a.error(n.Pos(), "function must return a value of type %s", expected)
		}
		return
	}
	gotType := a.analyzeExpr(n.Value)
	if expected == ast.Nothing {
		a.error(n.Pos(), "function declared to return nothing cannot return a value")
		return
	}
	if !TypesCompatible(expected, gotType) {
		a.error(n.Pos(), "returned value has type %s, function expects %s", gotType, expected)
	}
}

func (a *Analyzer) analyzeAsk(n *ast.Ask) {
	if n.Prompt != nil {
		promptType := a.analyzeExpr(n.Prompt)
		if promptType != ast.Text && promptType != ast.Unknown && promptType != ast.Error {
			a.warn(n.Prompt.Pos(), "ask prompt is not text, got %s", promptType)
		}
	}
	a.analyzeStoreTarget(n.Target, n.Pos())
}

func (a *Analyzer) analyzeRead(n *ast.Read) {
	a.analyzeStoreTarget(n.Target, n.Pos())
}

func (a *Analyzer) analyzeStoreTarget(name string, loc ast.SourceLocation) {
	sym := a.table.Lookup(name)
	if sym == nil {
		a.error(loc, "%q is not declared", name)
		return
	}
	symtab.MarkInitialized(sym)
}
