package cgen

import "github.com/naturelang/naturec/pkg/ast"

// cType maps a NatureLang data type to its C representation. Lists are
// represented by the runtime's opaque handle type, declared by
// naturelang_runtime.h, which every generated file includes.
func cType(t ast.DataType) string {
	switch t {
	case ast.Number:
		return "long long"
	case ast.Decimal:
		return "double"
	case ast.Text:
		return "const char *"
	case ast.Flag:
		return "bool"
	case ast.List:
		return "NLList *"
	case ast.Nothing:
		return "void"
	default:
		// Unknown (a list element, whose type is not tracked), Error and
		// Function fall back to Number, the same default pkg/semantic
		// gives a declaration with neither a type nor an initializer.
		return "long long"
	}
}

func cReturnType(t ast.DataType) string {
	if t == ast.Nothing {
		return "void"
	}
	return cType(t)
}

// zeroLiteral is the C initializer for a declaration with no assignment
// before its first use (shouldn't normally happen once pkg/irbuild has
// run, but keeps generated C from reading uninitialized memory).
func zeroLiteral(t ast.DataType) string {
	switch t {
	case ast.Decimal:
		return "0.0"
	case ast.Text:
		return "\"\""
	case ast.Flag:
		return "false"
	case ast.List:
		return "NULL"
	default:
		return "0"
	}
}

// printfFormat picks the %-conversion Display uses for a resolved type.
func printfFormat(t ast.DataType) string {
	switch t {
	case ast.Decimal:
		return "%g"
	case ast.Text:
		return "%s"
	case ast.Flag:
		return "%s"
	default:
		return "%lld"
	}
}
