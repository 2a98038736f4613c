package symtab

import (
	"testing"

	"github.com/naturelang/naturec/pkg/ast"
)

func TestDeclareAndLookup(t *testing.T) {
	tab := New()
	if _, err := tab.DeclareVariable("x", ast.Number, false, ast.SourceLocation{}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym := tab.Lookup("x")
	if sym == nil {
		t.Fatal("expected to find x")
	}
	if sym.Kind != Variable || sym.Type != ast.Number {
		t.Fatalf("unexpected symbol: %+v", sym)
	}
}

func TestRedeclarationInSameScopeErrors(t *testing.T) {
	tab := New()
	if _, err := tab.DeclareVariable("x", ast.Number, false, ast.SourceLocation{}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := tab.DeclareVariable("x", ast.Text, false, ast.SourceLocation{}, false); err == nil {
		t.Fatal("expected redeclaration error")
	}
}

func TestShadowingInChildScopeAllowed(t *testing.T) {
	tab := New()
	if _, err := tab.DeclareVariable("x", ast.Number, false, ast.SourceLocation{}, true); err != nil {
		t.Fatal(err)
	}
	tab.EnterScope()
	if _, err := tab.DeclareVariable("x", ast.Text, false, ast.SourceLocation{}, true); err != nil {
		t.Fatalf("shadowing should be allowed: %v", err)
	}
	if got := tab.Lookup("x").Type; got != ast.Text {
		t.Fatalf("inner scope lookup should find inner x, got %v", got)
	}
	tab.ExitScope()
	if got := tab.Lookup("x").Type; got != ast.Number {
		t.Fatalf("after exiting, lookup should find outer x, got %v", got)
	}
}

func TestLoopFlagInheritedButNotAcrossFunction(t *testing.T) {
	tab := New()
	tab.EnterLoopScope()
	if !tab.InLoop() {
		t.Fatal("expected to be in a loop")
	}
	tab.EnterScope()
	if !tab.InLoop() {
		t.Fatal("loop flag should be inherited by child block scope")
	}
	tab.EnterFunctionScope(ast.Nothing)
	if tab.InLoop() {
		t.Fatal("entering a function scope must reset the loop flag")
	}
}

func TestSecureZoneInherited(t *testing.T) {
	tab := New()
	tab.EnterSecureScope()
	tab.EnterScope()
	if !tab.InSecureZone() {
		t.Fatal("secure zone flag should be inherited by child scopes")
	}
	tab.EnterFunctionScope(ast.Nothing)
	if !tab.InSecureZone() {
		t.Fatal("secure zone flag is not reset by a function boundary")
	}
}

func TestReturnTypeWalksToNearestFunctionScope(t *testing.T) {
	tab := New()
	if got := tab.ReturnType(); got != ast.Nothing {
		t.Fatalf("global scope should report Nothing, got %v", got)
	}
	tab.EnterFunctionScope(ast.Number)
	tab.EnterScope()
	tab.EnterLoopScope()
	if got := tab.ReturnType(); got != ast.Number {
		t.Fatalf("expected nearest function scope's return type, got %v", got)
	}
}

func TestLookupDepthNeverExceedsCurrentDepth(t *testing.T) {
	tab := New()
	tab.DeclareVariable("g", ast.Number, false, ast.SourceLocation{}, true)
	tab.EnterScope()
	tab.EnterScope()
	sym := tab.Lookup("g")
	if sym == nil {
		t.Fatal("expected to find g from a nested scope")
	}
	// Global declares g at depth 0; the lookup itself is at depth 2.
	if tab.Depth() < 0 {
		t.Fatal("depth should be non-negative")
	}
	owner := -1
	for s := tab.Current; s != nil; s = s.Parent {
		if s.Symbols["g"] == sym {
			owner = s.Depth
			break
		}
	}
	if owner < 0 || owner > tab.Depth() {
		t.Fatalf("g resolved at depth %d, current depth is %d", owner, tab.Depth())
	}
}
