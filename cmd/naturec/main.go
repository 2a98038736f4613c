package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naturelang/naturec/pkg/optimize"
)

var version = "0.1.0"

// Debug flags for dumping intermediate representations, named after the
// -dparse/-dclight family this driver's CompCert-derived ancestor exposes.
var (
	dTac    bool
	dOptTac bool
	oReport bool
)

var (
	outputPath   string
	optLevelFlag int
	lax          bool
	configPath   string
)

// debugFlagNames lists flags that should accept CompCert's single-dash
// spelling (-dtac) in addition to pflag's double-dash (--dtac).
var debugFlagNames = []string{"dtac", "dopttac"}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// normalizeFlags converts CompCert-style single-dash flags like -dtac to
// --dtac, the way ralph-cc normalizes its own debug flags.
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, name := range debugFlagNames {
			if arg == "-"+name {
				result[i] = "--" + name
				break
			}
		}
	}
	return result
}

func resetFlags() {
	dTac, dOptTac, oReport, lax = false, false, false, false
	outputPath, configPath = "", ""
	optLevelFlag = -1
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "naturec [file.json]",
		Short: "naturec compiles a NatureLang program to C",
		Long: `naturec reads a NatureLang program (as a JSON AST produced by an
external frontend), type-checks it, lowers it to three-address code,
optimizes it, and emits a self-contained C translation unit.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			cfg, err := resolveConfig(configPath, optLevelFlag, lax)
			if err != nil {
				return err
			}
			return compileFile(args[0], cfg, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output C file (default: input with .c extension)")
	rootCmd.Flags().IntVarP(&optLevelFlag, "opt-level", "O", -1, "optimization level 0-2 (default: from naturec.yaml, else 1)")
	rootCmd.Flags().BoolVar(&lax, "lax", false, "generate C even if semantic analysis reported errors")
	rootCmd.Flags().StringVar(&configPath, "config", "naturec.yaml", "build configuration file")
	rootCmd.Flags().BoolVar(&dTac, "dtac", false, "dump unoptimized three-address code")
	rootCmd.Flags().BoolVar(&dOptTac, "dopttac", false, "dump optimized three-address code")
	rootCmd.Flags().BoolVar(&oReport, "oreport", false, "print a report of optimizer transformations")

	return rootCmd
}

// outputFilename derives the generated C file's path from the input path
// when -o wasn't given: input.json -> input.c.
func outputFilename(inputPath string) string {
	ext := ".json"
	if strings.HasSuffix(inputPath, ext) {
		return inputPath[:len(inputPath)-len(ext)] + ".c"
	}
	return inputPath + ".c"
}

func printOptReport(errOut io.Writer, stats optimize.Stats) {
	fmt.Fprintf(errOut, "naturec: %d iterations, %d constants folded, %d propagations, "+
		"%d algebraic simplifications, %d strength reductions, %d redundant loads, %d dead instructions\n",
		stats.Iterations, stats.ConstantsFolded, stats.PropagationsApplied,
		stats.AlgebraicSimplifications, stats.StrengthReductions,
		stats.RedundantLoadsEliminated, stats.DeadInstructionsEliminated)
}
