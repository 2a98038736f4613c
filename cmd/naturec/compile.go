package main

import (
	"fmt"
	"io"
	"os"

	"github.com/naturelang/naturec/pkg/cgen"
	"github.com/naturelang/naturec/pkg/irbuild"
	"github.com/naturelang/naturec/pkg/optimize"
	"github.com/naturelang/naturec/pkg/semantic"
	"github.com/naturelang/naturec/pkg/tac"

	"github.com/naturelang/naturec/internal/frontend"
)

// compileFile runs inputPath through every stage of the pipeline: parse,
// analyze, lower, optimize, generate. Semantic errors halt the pipeline
// before code generation unless cfg.lax was requested.
func compileFile(inputPath string, cfg compileConfig, out, errOut io.Writer) error {
	prog, err := frontend.Load(inputPath)
	if err != nil {
		fmt.Fprintf(errOut, "naturec: error: %v\n", err)
		return err
	}

	result := semantic.Analyze(prog)
	for _, w := range result.Warnings {
		fmt.Fprintf(errOut, "naturec: warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(errOut, "naturec: error: %s\n", e)
	}
	if !result.Success() && !cfg.lax {
		return fmt.Errorf("naturec: %d semantic error(s), use --lax to generate C anyway", len(result.Errors))
	}

	ir := irbuild.Build(prog)

	if dTac {
		tac.NewPrinter(errOut).PrintProgram(ir)
	}

	stats := optimize.Optimize(ir, optimize.Options{Level: cfg.optLevel})

	if dOptTac {
		tac.NewPrinter(errOut).PrintProgram(ir)
	}
	if oReport {
		printOptReport(errOut, stats)
	}

	destPath := outputPath
	if destPath == "" {
		destPath = outputFilename(inputPath)
	}

	f, err := os.Create(destPath)
	if err != nil {
		fmt.Fprintf(errOut, "naturec: error: %v\n", err)
		return err
	}
	defer f.Close()

	if err := cgen.Generate(ir, f, cgen.Options{}); err != nil {
		fmt.Fprintf(errOut, "naturec: error: generating %s: %v\n", destPath, err)
		return err
	}

	fmt.Fprintf(out, "naturec: wrote %s\n", destPath)
	return nil
}
