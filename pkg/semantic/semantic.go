// Package semantic walks a NatureLang AST, resolving names against a
// symbol table, annotating every expression's data type in place, and
// collecting the errors and warnings that result. It is the single
// source of truth pkg/irbuild trusts for "this program type-checks".
package semantic

import (
	"fmt"

	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/symtab"
)

// Diagnostic is one error or warning tied to a source location.
type Diagnostic struct {
	Loc     ast.SourceLocation
	Message string
}

func (d Diagnostic) String() string {
	if d.Loc.Filename == "" {
		return d.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.Loc.Filename, d.Loc.FirstLine, d.Loc.FirstColumn, d.Message)
}

// Result is the outcome of analyzing one program.
type Result struct {
	Table    *symtab.Table
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Success reports whether the program is free of semantic errors. A program
// with only warnings still succeeds; pkg/irbuild may lower it.
func (r Result) Success() bool { return len(r.Errors) == 0 }

// Analyzer holds the mutable state of one analysis pass: the active scope
// stack and the diagnostics accumulated so far.
type Analyzer struct {
	table    *symtab.Table
	errors   []Diagnostic
	warnings []Diagnostic
}

// New creates an Analyzer with a fresh, empty symbol table.
func New() *Analyzer {
	return &Analyzer{table: symtab.New()}
}

// Analyze type-checks prog from a clean Analyzer and returns the result.
func Analyze(prog *ast.Program) Result {
	a := New()
	a.analyzeProgram(prog)
	return Result{Table: a.table, Errors: a.errors, Warnings: a.warnings}
}

func (a *Analyzer) error(loc ast.SourceLocation, format string, args ...interface{}) {
	a.errors = append(a.errors, Diagnostic{Loc: loc, Message: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) warn(loc ast.SourceLocation, format string, args ...interface{}) {
	a.warnings = append(a.warnings, Diagnostic{Loc: loc, Message: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) analyzeProgram(prog *ast.Program) {
	// Two passes over top-level statements: first register every function
	// signature so forward calls resolve, then analyze bodies and the rest
	// of the top-level statements in source order.
	for _, s := range prog.Statements {
		if fn, ok := s.(*ast.FuncDecl); ok {
			a.declareFunction(fn)
		}
	}
	for _, s := range prog.Statements {
		a.analyzeStmt(s)
	}
}

func (a *Analyzer) declareFunction(fn *ast.FuncDecl) {
	params := make([]symtab.ParamInfo, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = symtab.ParamInfo{Name: p.Name, Type: p.DeclaredType}
	}
	if _, err := a.table.DeclareFunction(fn.Name, params, fn.ReturnType, fn.Pos()); err != nil {
		a.error(fn.Pos(), "%v", err)
	}
}
