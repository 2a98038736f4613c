// Package frontend stands in for NatureLang's lexer and parser, which are
// out of this repository's scope (SPEC_FULL.md §1): it loads a JSON
// encoding of an AST and rebuilds the pkg/ast tree pkg/semantic expects.
// A real frontend would hand pkg/semantic the same *ast.Program directly.
package frontend

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/naturelang/naturec/pkg/ast"
)

// Load reads path as JSON and decodes it into an *ast.Program.
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frontend: reading %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a JSON-encoded AST, as produced by the wire format
// node.go documents.
func Decode(data []byte) (*ast.Program, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("frontend: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	prog, ok := node.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("frontend: root node must be a Program, got %T", node)
	}
	return prog, nil
}
