package tac

// Program is the lowered form of one NatureLang source file: an implicit
// Main function holding top-level statements, plus every user-declared
// function, and the monotone temp/label counters pkg/irbuild allocates
// from while lowering (original_source/include/ir.h's TACProgram).
type Program struct {
	Main      *Function
	Functions []*Function

	nextTemp  int
	nextLabel int
}

// NewProgram creates a program with an empty Main function.
func NewProgram() *Program {
	return &Program{Main: NewFunction("main", nil, 0)}
}

// NewTemp allocates the next temp number, unique for the life of p.
func (p *Program) NewTemp() int {
	t := p.nextTemp
	p.nextTemp++
	return t
}

// NewLabel allocates the next label number, unique for the life of p.
func (p *Program) NewLabel() int {
	l := p.nextLabel
	p.nextLabel++
	return l
}

// AddFunction registers fn as one of p's user-declared functions.
func (p *Program) AddFunction(fn *Function) {
	p.Functions = append(p.Functions, fn)
}

// AllFunctions returns Main followed by every declared function, the
// order pkg/optimize and pkg/cgen iterate in.
func (p *Program) AllFunctions() []*Function {
	out := make([]*Function, 0, len(p.Functions)+1)
	out = append(out, p.Main)
	out = append(out, p.Functions...)
	return out
}

// TotalInstructions sums instruction counts across every function.
func (p *Program) TotalInstructions() int {
	total := 0
	for _, fn := range p.AllFunctions() {
		total += fn.Count
	}
	return total
}
