package cgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

func generate(t *testing.T, prog *tac.Program) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Generate(prog, &buf, Options{}); err != nil {
		t.Fatalf("Generate returned an error: %v", err)
	}
	return buf.String()
}

func TestMainFunctionWrapsTopLevelStatements(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpDisplay, tac.None, tac.IntConst(42), tac.None, tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "int main(int argc, char *argv[]) {") {
		t.Errorf("expected a main function, got:\n%s", out)
	}
	if !strings.Contains(out, "printf(\"%lld\\n\", 42);") {
		t.Errorf("expected a display of 42, got:\n%s", out)
	}
	if !strings.Contains(out, "return 0;") {
		t.Errorf("expected main to return 0, got:\n%s", out)
	}
}

func TestVariableDeclarationPrecedesUse(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpAssign, tac.Var("x", ast.Number), tac.IntConst(5), tac.None, tac.None, 1)
	prog.Main.Emit(tac.OpDisplay, tac.None, tac.Var("x", ast.Number), tac.None, tac.None, 2)

	out := generate(t, prog)
	declIdx := strings.Index(out, "long long x = 0;")
	useIdx := strings.Index(out, "x = 5;")
	if declIdx == -1 || useIdx == -1 || declIdx > useIdx {
		t.Fatalf("expected declaration before use, got:\n%s", out)
	}
}

func TestFunctionCallTranslatesParamsInOrder(t *testing.T) {
	prog := tac.NewProgram()
	fn := tac.NewFunction("add", []tac.Param{{Name: "a", Type: ast.Number}, {Name: "b", Type: ast.Number}}, ast.Number)
	r := tac.Temp(0, ast.Number)
	fn.Emit(tac.OpAdd, r, tac.Var("a", ast.Number), tac.Var("b", ast.Number), tac.None, 1)
	fn.Emit(tac.OpReturn, tac.None, r, tac.None, tac.None, 1)
	prog.AddFunction(fn)

	prog.Main.Emit(tac.OpParam, tac.None, tac.IntConst(1), tac.None, tac.None, 1)
	prog.Main.Emit(tac.OpParam, tac.None, tac.IntConst(2), tac.None, tac.None, 1)
	prog.Main.Emit(tac.OpCall, tac.Temp(0, ast.Number), tac.FuncOperand("add"), tac.IntConst(2), tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "long long add(long long a, long long b) {") {
		t.Errorf("expected an add(a, b) signature, got:\n%s", out)
	}
	if !strings.Contains(out, "t0 = add(1, 2);") {
		t.Errorf("expected a call add(1, 2), got:\n%s", out)
	}
}

func TestVoidFunctionCallEmitsBareStatement(t *testing.T) {
	prog := tac.NewProgram()
	fn := tac.NewFunction("greet", nil, ast.Nothing)
	fn.Emit(tac.OpDisplay, tac.None, tac.StringConst("hi"), tac.None, tac.None, 1)
	fn.Emit(tac.OpReturn, tac.None, tac.None, tac.None, tac.None, 1)
	prog.AddFunction(fn)
	prog.Main.Emit(tac.OpCall, tac.None, tac.FuncOperand("greet"), tac.IntConst(0), tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "greet();\n") {
		t.Errorf("expected a bare void call, got:\n%s", out)
	}
}

func TestIfFalseGotoGeneratesNegatedCondition(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.EmitIfFalseGoto(tac.BoolConst(true), 0, 1)
	prog.Main.EmitLabel(0, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "if (!(true)) goto L0;") {
		t.Errorf("expected a negated guard, got:\n%s", out)
	}
}

func TestConcatStringifiesNonTextOperand(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpConcat, tac.Temp(0, ast.Text), tac.StringConst("n="), tac.IntConst(5), tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "nl_concat(\"n=\", nl_int_to_str(5));") {
		t.Errorf("expected the int operand to be stringified, got:\n%s", out)
	}
}

func TestDisplayOfFlagPrintsYesNo(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpDisplay, tac.None, tac.BoolConst(true), tac.None, tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, `(true) ? "yes" : "no"`) {
		t.Errorf("expected a ternary yes/no, got:\n%s", out)
	}
}

func TestListLengthCallsReservedSymbol(t *testing.T) {
	prog := tac.NewProgram()
	list := tac.Var("xs", ast.List)
	prog.Main.Emit(tac.OpListLen, tac.Temp(0, ast.Number), list, tac.None, tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "t0 = __list_length(xs);") {
		t.Errorf("expected a call to __list_length, got:\n%s", out)
	}
}

func TestPowUsesMathDotHAndPullsInHeader(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpPow, tac.Temp(0, ast.Decimal), tac.FloatConst(2), tac.FloatConst(3), tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "#include <math.h>") {
		t.Errorf("expected math.h to be included, got:\n%s", out)
	}
	if !strings.Contains(out, "t0 = pow(2, 3);") {
		t.Errorf("expected a pow() call, got:\n%s", out)
	}
}

func TestReadDeclaresSharedInputBuffer(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpRead, tac.Var("name", ast.Text), tac.None, tac.None, tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "static char __nl_input[4096];") {
		t.Errorf("expected a static input buffer declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "name = strdup(__nl_input);") {
		t.Errorf("expected the read to assign via strdup, got:\n%s", out)
	}
}

func TestIdentifierWithSpaceIsSanitized(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpAssign, tac.Var("my number", ast.Number), tac.IntConst(1), tac.None, tac.None, 1)

	out := generate(t, prog)
	if !strings.Contains(out, "my_number") {
		t.Errorf("expected the space in the identifier to become an underscore, got:\n%s", out)
	}
}
