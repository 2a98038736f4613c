package optimize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/naturelang/naturec/pkg/ast"
	"github.com/naturelang/naturec/pkg/tac"
)

func dump(fn *tac.Function) string {
	var buf bytes.Buffer
	tac.NewPrinter(&buf).PrintFunction(fn)
	return buf.String()
}

func TestFoldConstantsComputesAddition(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.IntConst(2), tac.IntConst(3), tac.None, 1)

	var stats Stats
	if !foldConstants(fn, &stats) {
		t.Fatal("expected folding to report a change")
	}
	if stats.ConstantsFolded != 1 {
		t.Fatalf("expected 1 fold, got %d", stats.ConstantsFolded)
	}
	if !strings.Contains(dump(fn), "t0 = 5") {
		t.Errorf("expected t0 = 5, got: %s", dump(fn))
	}
}

func TestFoldConstantsSkipsModOnDecimal(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpMod, tac.Temp(0, ast.Decimal), tac.FloatConst(5.5), tac.FloatConst(2), tac.None, 1)

	var stats Stats
	if foldConstants(fn, &stats) {
		t.Fatal("mod on decimal operands should not be folded")
	}
}

func TestFoldConstantsSkipsDivisionByZero(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpDiv, tac.Temp(0, ast.Number), tac.IntConst(5), tac.IntConst(0), tac.None, 1)

	var stats Stats
	if foldConstants(fn, &stats) {
		t.Fatal("division by zero should not be folded at compile time")
	}
}

func TestAlgebraicSimplifyAddZero(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpAdd, tac.Var("x", ast.Number), tac.Var("y", ast.Number), tac.IntConst(0), tac.None, 1)

	var stats Stats
	if !simplifyAlgebraic(fn, &stats) {
		t.Fatal("expected x+0 to simplify")
	}
	if !strings.Contains(dump(fn), "x = y") {
		t.Errorf("expected x = y, got: %s", dump(fn))
	}
}

func TestAlgebraicSimplifyMulZero(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpMul, tac.Var("x", ast.Number), tac.Var("y", ast.Number), tac.IntConst(0), tac.None, 1)

	var stats Stats
	simplifyAlgebraic(fn, &stats)
	if !strings.Contains(dump(fn), "x = 0") {
		t.Errorf("expected x = 0, got: %s", dump(fn))
	}
}

func TestStrengthReductionMulByTwo(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpMul, tac.Var("x", ast.Number), tac.Var("y", ast.Number), tac.IntConst(2), tac.None, 1)

	var stats Stats
	if !reduceStrength(fn, &stats) {
		t.Fatal("expected y*2 to strength-reduce")
	}
	if !strings.Contains(dump(fn), "x = y add y") {
		t.Errorf("expected x = y add y, got: %s", dump(fn))
	}
}

func TestRedundantLoadEliminationReusesPriorComputation(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.Var("a", ast.Number), tac.Var("b", ast.Number), tac.None, 1)
	fn.Emit(tac.OpAdd, tac.Temp(1, ast.Number), tac.Var("a", ast.Number), tac.Var("b", ast.Number), tac.None, 2)

	var stats Stats
	if !eliminateRedundantLoads(fn, &stats) {
		t.Fatal("expected the second identical add to be eliminated")
	}
	if !strings.Contains(dump(fn), "t1 = t0") {
		t.Errorf("expected t1 = t0, got: %s", dump(fn))
	}
}

func TestRedundantLoadEliminationInvalidatedByWrite(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.Var("a", ast.Number), tac.Var("b", ast.Number), tac.None, 1)
	fn.Emit(tac.OpAssign, tac.Var("a", ast.Number), tac.IntConst(9), tac.None, tac.None, 2)
	fn.Emit(tac.OpAdd, tac.Temp(1, ast.Number), tac.Var("a", ast.Number), tac.Var("b", ast.Number), tac.None, 3)

	var stats Stats
	eliminateRedundantLoads(fn, &stats)
	if strings.Contains(dump(fn), "t1 = t0") {
		t.Error("a reassignment to 'a' should have invalidated the cached add")
	}
}

func TestDeadCodeEliminationRemovesUnusedPureResult(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.IntConst(1), tac.IntConst(2), tac.None, 1)
	fn.Emit(tac.OpDisplay, tac.None, tac.IntConst(7), tac.None, tac.None, 2)

	var stats Stats
	if !eliminateDeadCode(fn, &stats) {
		t.Fatal("expected the unused add to be marked dead")
	}
	if stats.DeadInstructionsEliminated != 1 {
		t.Fatalf("expected 1 elimination, got %d", stats.DeadInstructionsEliminated)
	}
}

func TestDeadCodeEliminationKeepsUsedResult(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.IntConst(1), tac.IntConst(2), tac.None, 1)
	fn.Emit(tac.OpDisplay, tac.None, tac.Temp(0, ast.Number), tac.None, tac.None, 2)

	var stats Stats
	eliminateDeadCode(fn, &stats)
	if stats.DeadInstructionsEliminated != 0 {
		t.Fatalf("expected the add feeding display to survive, got %d eliminations", stats.DeadInstructionsEliminated)
	}
}

func TestDeadCodeEliminationNeverRemovesCalls(t *testing.T) {
	fn := tac.NewFunction("f", nil, ast.Nothing)
	fn.Emit(tac.OpCall, tac.Temp(0, ast.Number), tac.FuncOperand("sideEffecting"), tac.IntConst(0), tac.None, 1)

	var stats Stats
	eliminateDeadCode(fn, &stats)
	if stats.DeadInstructionsEliminated != 0 {
		t.Fatal("a call must never be eliminated even if its result is unused")
	}
}

func TestOptimizeFixpointFoldsThenPropagatesThenDeadCodes(t *testing.T) {
	prog := tac.NewProgram()
	fn := prog.Main
	fn.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.IntConst(2), tac.IntConst(3), tac.None, 1)
	fn.Emit(tac.OpAssign, tac.Var("x", ast.Number), tac.Temp(0, ast.Number), tac.None, tac.None, 2)
	fn.Emit(tac.OpDisplay, tac.None, tac.Var("x", ast.Number), tac.None, tac.None, 3)

	stats := Optimize(prog, Options{Level: LevelFull})
	if stats.ConstantsFolded == 0 {
		t.Error("expected at least one fold")
	}
	out := dump(fn)
	if !strings.Contains(out, "display") {
		t.Errorf("the display instruction must survive, got: %s", out)
	}
}

func TestOptimizeLevelBasicSkipsPropagationAndAlgebraic(t *testing.T) {
	prog := tac.NewProgram()
	fn := prog.Main
	fn.Emit(tac.OpAssign, tac.Var("x", ast.Number), tac.IntConst(5), tac.None, tac.None, 1)
	fn.Emit(tac.OpDisplay, tac.None, tac.Var("x", ast.Number), tac.None, tac.None, 2)

	stats := Optimize(prog, Options{Level: LevelBasic})
	if stats.PropagationsApplied != 0 {
		t.Errorf("expected LevelBasic not to propagate constants, got %d", stats.PropagationsApplied)
	}
	if !strings.Contains(dump(fn), "display x") {
		t.Errorf("expected display x to survive without propagation, got: %s", dump(fn))
	}
}

func TestOptimizeLevelNoneIsANoOp(t *testing.T) {
	prog := tac.NewProgram()
	prog.Main.Emit(tac.OpAdd, tac.Temp(0, ast.Number), tac.IntConst(2), tac.IntConst(3), tac.None, 1)

	stats := Optimize(prog, Options{Level: LevelNone})
	if stats.ConstantsFolded != 0 || stats.Iterations != 0 {
		t.Fatalf("expected no work done at LevelNone, got %+v", stats)
	}
}
