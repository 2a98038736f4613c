package ast

import "testing"

func TestDataTypeString(t *testing.T) {
	cases := map[DataType]string{
		Unknown: "unknown",
		Number:  "number",
		Decimal: "decimal",
		Text:    "text",
		Flag:    "flag",
		List:    "list",
		Nothing: "nothing",
		Function: "function",
		Error:   "error",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("DataType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}

func TestExprBaseTypeRoundTrip(t *testing.T) {
	id := NewIdentifier(SourceLocation{}, "x")
	if id.Type() != Unknown {
		t.Fatalf("new identifier should default to Unknown, got %v", id.Type())
	}
	id.SetType(Number)
	if id.Type() != Number {
		t.Fatalf("SetType did not stick: got %v", id.Type())
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	// create a number called x and set it to 1 plus 2
	prog := NewProgram(SourceLocation{},
		NewVarDecl(SourceLocation{}, "x", Number,
			NewBinaryOp(SourceLocation{}, OpAdd, NewLiteralInt(SourceLocation{}, 1), NewLiteralInt(SourceLocation{}, 2)),
			false),
		NewDisplay(SourceLocation{}, NewIdentifier(SourceLocation{}, "x")),
	)

	var visited []Node
	Walk(prog, &Visitor{Pre: func(n Node) { visited = append(visited, n) }})

	// program, vardecl, binaryop, lit1, lit2, display, identifier
	if len(visited) != 7 {
		t.Fatalf("expected 7 visited nodes, got %d", len(visited))
	}
	if _, ok := visited[0].(*Program); !ok {
		t.Fatalf("first visited node should be *Program, got %T", visited[0])
	}
}

func TestWalkHandlesNilOptionalFields(t *testing.T) {
	decl := NewVarDecl(SourceLocation{}, "x", Number, nil, false)
	// Should not panic despite a nil initializer.
	Walk(decl, &Visitor{})
}
