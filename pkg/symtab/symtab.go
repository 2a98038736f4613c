// Package symtab implements NatureLang's lexical scope stack: nested
// scopes of variables, constants, parameters, and functions, with the
// lookup/declare rules pkg/semantic relies on while type-checking.
package symtab

import (
	"fmt"

	"github.com/naturelang/naturec/pkg/ast"
)

// Kind distinguishes the different sorts of symbol a name can name.
type Kind int

const (
	Variable Kind = iota
	Constant
	Function
	Parameter
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Constant:
		return "constant"
	case Function:
		return "function"
	case Parameter:
		return "parameter"
	default:
		return "?"
	}
}

// ParamInfo describes one parameter of a function symbol.
type ParamInfo struct {
	Name string
	Type ast.DataType
}

// FuncInfo holds the extra bookkeeping a Function symbol needs.
type FuncInfo struct {
	Params     []ParamInfo
	ReturnType ast.DataType
}

// Symbol is one declared name, alive as long as its owning Scope.
type Symbol struct {
	Name        string
	Kind        Kind
	Type        ast.DataType
	DeclLoc     ast.SourceLocation
	Initialized bool
	Func        *FuncInfo // non-nil only when Kind == Function
}

// Scope is one lexical nesting level. Loop and secure-zone flags are
// inherited by child scopes; the function flag is not — entering a
// function scope always resets the loop flag (spec.md §3).
type Scope struct {
	Depth           int
	Parent          *Scope
	Symbols         map[string]*Symbol
	IsFunctionScope bool
	IsLoopScope     bool
	IsSecureZone    bool
	ExpectedReturn  ast.DataType
}

// Table is the stack of scopes rooted at Global, with Current tracking
// the scope analysis is presently inside.
type Table struct {
	Global  *Scope
	Current *Scope
}

// New creates a table with a single, empty global scope.
func New() *Table {
	global := &Scope{Depth: 0, Symbols: make(map[string]*Symbol)}
	return &Table{Global: global, Current: global}
}

// Depth reports the nesting depth of the current scope (0 = global).
func (t *Table) Depth() int { return t.Current.Depth }

// InLoop reports whether the current scope is inside a loop.
func (t *Table) InLoop() bool { return t.Current.IsLoopScope }

// InFunction reports whether the current scope is inside a function body.
func (t *Table) InFunction() bool {
	for s := t.Current; s != nil; s = s.Parent {
		if s.IsFunctionScope {
			return true
		}
	}
	return false
}

// InSecureZone reports whether the current scope is inside a secure zone.
func (t *Table) InSecureZone() bool { return t.Current.IsSecureZone }

// ReturnType is the expected_return of the nearest enclosing function
// scope, or Nothing if there is none.
func (t *Table) ReturnType() ast.DataType {
	for s := t.Current; s != nil; s = s.Parent {
		if s.IsFunctionScope {
			return s.ExpectedReturn
		}
	}
	return ast.Nothing
}

func (t *Table) push(s *Scope) {
	s.Depth = t.Current.Depth + 1
	s.Parent = t.Current
	s.Symbols = make(map[string]*Symbol)
	t.Current = s
}

// EnterScope opens a plain nested scope (e.g. a Block), inheriting the
// enclosing loop and secure-zone flags.
func (t *Table) EnterScope() {
	t.push(&Scope{
		IsLoopScope:  t.Current.IsLoopScope,
		IsSecureZone: t.Current.IsSecureZone,
	})
}

// EnterFunctionScope opens a function body scope. The loop flag resets
// (a function boundary is never "inside" an enclosing loop); the
// secure-zone flag is still inherited.
func (t *Table) EnterFunctionScope(returnType ast.DataType) {
	t.push(&Scope{
		IsFunctionScope: true,
		IsSecureZone:    t.Current.IsSecureZone,
		ExpectedReturn:  returnType,
	})
}

// EnterLoopScope opens a scope that enables break/continue.
func (t *Table) EnterLoopScope() {
	t.push(&Scope{
		IsLoopScope:  true,
		IsSecureZone: t.Current.IsSecureZone,
	})
}

// EnterSecureScope opens a scope marked as a secure (or safe) zone.
func (t *Table) EnterSecureScope() {
	t.push(&Scope{
		IsLoopScope:  t.Current.IsLoopScope,
		IsSecureZone: true,
	})
}

// ExitScope returns to the parent scope. The exited scope's symbols are
// simply dropped; the garbage collector reclaims them.
func (t *Table) ExitScope() {
	if t.Current.Parent != nil {
		t.Current = t.Current.Parent
	}
}

func (t *Table) declare(sym *Symbol) error {
	if _, exists := t.Current.Symbols[sym.Name]; exists {
		return fmt.Errorf("%q is already declared in this scope", sym.Name)
	}
	t.Current.Symbols[sym.Name] = sym
	return nil
}

// DeclareVariable declares a variable or constant in the current scope.
func (t *Table) DeclareVariable(name string, typ ast.DataType, isConst bool, loc ast.SourceLocation, initialized bool) (*Symbol, error) {
	kind := Variable
	if isConst {
		kind = Constant
	}
	sym := &Symbol{Name: name, Kind: kind, Type: typ, DeclLoc: loc, Initialized: initialized}
	if err := t.declare(sym); err != nil {
		return nil, err
	}
	return sym, nil
}

// DeclareFunction declares a function in the current scope.
func (t *Table) DeclareFunction(name string, params []ParamInfo, returnType ast.DataType, loc ast.SourceLocation) (*Symbol, error) {
	sym := &Symbol{
		Name: name, Kind: Function, Type: ast.Function, DeclLoc: loc, Initialized: true,
		Func: &FuncInfo{Params: params, ReturnType: returnType},
	}
	if err := t.declare(sym); err != nil {
		return nil, err
	}
	return sym, nil
}

// DeclareParameter declares a function parameter in the current scope,
// already marked initialized.
func (t *Table) DeclareParameter(name string, typ ast.DataType, loc ast.SourceLocation) (*Symbol, error) {
	sym := &Symbol{Name: name, Kind: Parameter, Type: typ, DeclLoc: loc, Initialized: true}
	if err := t.declare(sym); err != nil {
		return nil, err
	}
	return sym, nil
}

// Lookup walks the current scope and its ancestors; the first match wins.
func (t *Table) Lookup(name string) *Symbol {
	for s := t.Current; s != nil; s = s.Parent {
		if sym, ok := s.Symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupCurrentScope looks up name without searching parent scopes.
func (t *Table) LookupCurrentScope(name string) *Symbol {
	return t.Current.Symbols[name]
}

// LookupFunction looks up name and returns it only if it names a function.
func (t *Table) LookupFunction(name string) *Symbol {
	sym := t.Lookup(name)
	if sym == nil || sym.Kind != Function {
		return nil
	}
	return sym
}

// MarkInitialized records that sym has now been assigned a value.
func MarkInitialized(sym *Symbol) {
	sym.Initialized = true
}
