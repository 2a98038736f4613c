// Package optimize runs NatureLang's optimizer over lowered three-address
// code: constant folding, constant propagation, algebraic simplification,
// strength reduction, and redundant-load elimination feed a dead-code pass
// to a fixpoint, after which a sweep physically compacts each function's
// instruction list.
package optimize

import "github.com/naturelang/naturec/pkg/tac"

// Level selects how aggressive the optimizer is, mirroring the -O0/-O1/-O2
// switches original_source/include/optimizer.h exposes.
type Level int

const (
	LevelNone  Level = 0 // no optimization; pkg/cgen sees the raw lowering
	LevelBasic Level = 1 // constant folding, dead code
	LevelFull  Level = 2 // LevelBasic plus propagation, algebraic simplification, strength reduction, redundant loads
)

// Options configures one Optimize call.
type Options struct {
	Level         Level
	MaxIterations int // 0 means a sensible default
}

// Stats counts how many times each pass actually changed something, across
// every function in the program, for the cmd/naturec "--oreport" flag.
type Stats struct {
	ConstantsFolded             int
	PropagationsApplied         int
	AlgebraicSimplifications    int
	StrengthReductions          int
	RedundantLoadsEliminated    int
	DeadInstructionsEliminated  int
	Iterations                  int
}

const defaultMaxIterations = 10

// Optimize runs every enabled pass to a fixpoint over each function in
// prog, then sweeps dead instructions out of each function's list.
func Optimize(prog *tac.Program, opts Options) Stats {
	var stats Stats
	if opts.Level == LevelNone {
		return stats
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	for _, fn := range prog.AllFunctions() {
		optimizeFunction(fn, opts, maxIter, &stats)
	}
	return stats
}

func optimizeFunction(fn *tac.Function, opts Options, maxIter int, stats *Stats) {
	for i := 0; i < maxIter; i++ {
		changed := false

		if foldConstants(fn, stats) {
			changed = true
		}
		if opts.Level >= LevelFull {
			if propagateConstants(fn, stats) {
				changed = true
			}
			if simplifyAlgebraic(fn, stats) {
				changed = true
			}
			if reduceStrength(fn, stats) {
				changed = true
			}
			if eliminateRedundantLoads(fn, stats) {
				changed = true
			}
		}
		if eliminateDeadCode(fn, stats) {
			changed = true
		}

		stats.Iterations++
		if !changed {
			break
		}
	}
	fn.Sweep()
}
