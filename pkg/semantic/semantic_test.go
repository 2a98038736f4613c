package semantic

import (
	"testing"

	"github.com/naturelang/naturec/pkg/ast"
)

func TestVarDeclInfersTypeFromInitializer(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewVarDecl(ast.SourceLocation{}, "x", ast.Unknown, ast.NewLiteralInt(ast.SourceLocation{}, 5), false),
	)
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	sym := res.Table.Lookup("x")
	if sym == nil || sym.Type != ast.Number {
		t.Fatalf("expected x:number, got %+v", sym)
	}
}

func TestUndeclaredIdentifierIsAnError(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewDisplay(ast.SourceLocation{}, ast.NewIdentifier(ast.SourceLocation{}, "nope")),
	)
	res := Analyze(prog)
	if res.Success() {
		t.Fatal("expected an error for an undeclared identifier")
	}
}

func TestMixedTypeAdditionConcatenatesToText(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewVarDecl(ast.SourceLocation{}, "s", ast.Unknown,
			ast.NewBinaryOp(ast.SourceLocation{}, ast.OpAdd,
				ast.NewLiteralString(ast.SourceLocation{}, "n="),
				ast.NewLiteralInt(ast.SourceLocation{}, 5)),
			false),
	)
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if got := res.Table.Lookup("s").Type; got != ast.Text {
		t.Fatalf("expected text, got %v", got)
	}
}

func TestIncompatibleOperandsProduceError(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewDisplay(ast.SourceLocation{}, ast.NewBinaryOp(ast.SourceLocation{}, ast.OpAnd,
			ast.NewLiteralInt(ast.SourceLocation{}, 1),
			ast.NewLiteralBool(ast.SourceLocation{}, true))),
	)
	res := Analyze(prog)
	if res.Success() {
		t.Fatal("expected an operator-type error")
	}
}

func TestBreakOutsideLoopIsAnError(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{}, ast.NewBreak(ast.SourceLocation{}))
	res := Analyze(prog)
	if res.Success() {
		t.Fatal("expected break-outside-loop error")
	}
}

func TestBreakInsideWhileIsAllowed(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewWhile(ast.SourceLocation{}, ast.NewLiteralBool(ast.SourceLocation{}, true),
			ast.NewBlock(ast.SourceLocation{}, ast.NewBreak(ast.SourceLocation{}))),
	)
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestFunctionCallArityMismatch(t *testing.T) {
	fn := ast.NewFuncDecl(ast.SourceLocation{}, "double", []*ast.ParamDecl{
		ast.NewParamDecl(ast.SourceLocation{}, "n", ast.Number),
	}, ast.Number, ast.NewBlock(ast.SourceLocation{}, ast.NewReturn(ast.SourceLocation{}, ast.NewIdentifier(ast.SourceLocation{}, "n"))))
	call := ast.NewExprStmt(ast.SourceLocation{}, ast.NewFuncCall(ast.SourceLocation{}, "double"))
	prog := ast.NewProgram(ast.SourceLocation{}, fn, call)
	res := Analyze(prog)
	if res.Success() {
		t.Fatal("expected an arity-mismatch error")
	}
}

func TestForwardFunctionCallResolves(t *testing.T) {
	call := ast.NewExprStmt(ast.SourceLocation{}, ast.NewFuncCall(ast.SourceLocation{}, "later", ast.NewLiteralInt(ast.SourceLocation{}, 1)))
	fn := ast.NewFuncDecl(ast.SourceLocation{}, "later", []*ast.ParamDecl{
		ast.NewParamDecl(ast.SourceLocation{}, "n", ast.Number),
	}, ast.Nothing, ast.NewBlock(ast.SourceLocation{}))
	prog := ast.NewProgram(ast.SourceLocation{}, call, fn)
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("expected the forward call to resolve, got: %v", res.Errors)
	}
}

func TestReturnTypeMismatch(t *testing.T) {
	fn := ast.NewFuncDecl(ast.SourceLocation{}, "f", nil, ast.Text,
		ast.NewBlock(ast.SourceLocation{}, ast.NewReturn(ast.SourceLocation{}, ast.NewLiteralInt(ast.SourceLocation{}, 1))))
	prog := ast.NewProgram(ast.SourceLocation{}, fn)
	res := Analyze(prog)
	if res.Success() {
		t.Fatal("expected a return-type mismatch error")
	}
}

func TestForEachOverTextDeclaresTextIterator(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewVarDecl(ast.SourceLocation{}, "s", ast.Unknown, ast.NewLiteralString(ast.SourceLocation{}, "hi"), false),
		ast.NewForEach(ast.SourceLocation{}, "ch", ast.NewIdentifier(ast.SourceLocation{}, "s"),
			ast.NewBlock(ast.SourceLocation{}, ast.NewDisplay(ast.SourceLocation{}, ast.NewIdentifier(ast.SourceLocation{}, "ch")))),
	)
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestIndexOnTextResolvesToText(t *testing.T) {
	idx := ast.NewIndex(ast.SourceLocation{}, ast.NewLiteralString(ast.SourceLocation{}, "hi"), ast.NewLiteralInt(ast.SourceLocation{}, 0))
	prog := ast.NewProgram(ast.SourceLocation{}, ast.NewDisplay(ast.SourceLocation{}, idx))
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if idx.Type() != ast.Text {
		t.Fatalf("expected indexing text to resolve to text, got %v", idx.Type())
	}
}

func TestIndexOnListResolvesToUnknown(t *testing.T) {
	idx := ast.NewIndex(ast.SourceLocation{}, ast.NewList(ast.SourceLocation{}, ast.NewLiteralInt(ast.SourceLocation{}, 1)), ast.NewLiteralInt(ast.SourceLocation{}, 0))
	prog := ast.NewProgram(ast.SourceLocation{}, ast.NewDisplay(ast.SourceLocation{}, idx))
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if idx.Type() != ast.Unknown {
		t.Fatalf("expected indexing a list to resolve to unknown, got %v", idx.Type())
	}
}

func TestReturnWithValueOutsideFunctionReportsOneError(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{}, ast.NewReturn(ast.SourceLocation{}, ast.NewLiteralInt(ast.SourceLocation{}, 1)))
	res := Analyze(prog)
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(res.Errors), res.Errors)
	}
}

func TestSecureZoneDoesNotRestrictOperators(t *testing.T) {
	prog := ast.NewProgram(ast.SourceLocation{},
		ast.NewSecureZone(ast.SourceLocation{},
			ast.NewBlock(ast.SourceLocation{}, ast.NewDisplay(ast.SourceLocation{},
				ast.NewBinaryOp(ast.SourceLocation{}, ast.OpAdd, ast.NewLiteralInt(ast.SourceLocation{}, 1), ast.NewLiteralInt(ast.SourceLocation{}, 2)))),
			false),
	)
	res := Analyze(prog)
	if !res.Success() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}
