package tac

import "github.com/naturelang/naturec/pkg/ast"

// Param describes one formal parameter of a TAC function.
type Param struct {
	Name string
	Type ast.DataType
}

// Function is one lowered NatureLang function (or the implicit top-level
// "main" function that holds a program's free-standing statements). Its
// instructions form a doubly-linked list from First to Last so optimizer
// passes can splice instructions in and mark them Dead in place without
// reindexing a slice.
type Function struct {
	Name       string
	Params     []Param
	ReturnType ast.DataType

	First, Last *Instr
	Count       int

	Next *Function // not set by this package; Program keeps its functions in a slice
}

// NewFunction creates an empty function ready to receive instructions.
func NewFunction(name string, params []Param, ret ast.DataType) *Function {
	return &Function{Name: name, Params: params, ReturnType: ret}
}

// Append adds instr to the end of f's instruction list and returns it.
func (f *Function) Append(instr *Instr) *Instr {
	if f.Last == nil {
		f.First = instr
		f.Last = instr
		instr.Prev = nil
		instr.Next = nil
	} else {
		instr.Prev = f.Last
		instr.Next = nil
		f.Last.Next = instr
		f.Last = instr
	}
	f.Count++
	return instr
}

// InsertAfter splices instr into the list immediately after at.
func (f *Function) InsertAfter(at, instr *Instr) {
	instr.Prev = at
	instr.Next = at.Next
	if at.Next != nil {
		at.Next.Prev = instr
	} else {
		f.Last = instr
	}
	at.Next = instr
	f.Count++
}

// Remove unlinks instr from the list. instr's own Prev/Next are left
// untouched so callers that are mid-iteration can still advance from it.
func (f *Function) Remove(instr *Instr) {
	if instr.Prev != nil {
		instr.Prev.Next = instr.Next
	} else {
		f.First = instr.Next
	}
	if instr.Next != nil {
		instr.Next.Prev = instr.Prev
	} else {
		f.Last = instr.Prev
	}
	f.Count--
}

// Sweep physically removes every instruction marked Dead, compacting the
// list. pkg/optimize's dead-code pass only flips the Dead bit; Sweep is the
// final pass that reclaims the space (SPEC_FULL.md §4.3).
func (f *Function) Sweep() int {
	removed := 0
	for instr := f.First; instr != nil; {
		next := instr.Next
		if instr.Dead {
			f.Remove(instr)
			removed++
		}
		instr = next
	}
	return removed
}

// Instrs returns f's instructions as a slice, in program order. Used by
// passes and tests that find it easier to index than to walk links.
func (f *Function) Instrs() []*Instr {
	out := make([]*Instr, 0, f.Count)
	for instr := f.First; instr != nil; instr = instr.Next {
		out = append(out, instr)
	}
	return out
}
