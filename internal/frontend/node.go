package frontend

import (
	"encoding/json"
	"fmt"

	"github.com/naturelang/naturec/pkg/ast"
)

// rawNode is the wire shape of every JSON AST node: a "node" tag plus
// whatever fields that type needs, decoded lazily via json.RawMessage so
// decodeNode can dispatch before committing to a concrete Go struct.
type rawNode struct {
	Type string          `json:"node"`
	Loc  rawLoc          `json:"loc"`
	Body json.RawMessage `json:"-"`
}

type rawLoc struct {
	Filename    string `json:"filename"`
	FirstLine   int    `json:"first_line"`
	FirstColumn int    `json:"first_column"`
	LastLine    int    `json:"last_line"`
	LastColumn  int    `json:"last_column"`
}

func (l rawLoc) toAST() ast.SourceLocation {
	return ast.SourceLocation{
		Filename:    l.Filename,
		FirstLine:   l.FirstLine,
		FirstColumn: l.FirstColumn,
		LastLine:    l.LastLine,
		LastColumn:  l.LastColumn,
	}
}

// UnmarshalJSON captures the whole object in Body so per-type decoders can
// re-unmarshal it into the fields they actually need.
func (r *rawNode) UnmarshalJSON(data []byte) error {
	type peek struct {
		Type string `json:"node"`
		Loc  rawLoc `json:"loc"`
	}
	var p peek
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	r.Type = p.Type
	r.Loc = p.Loc
	r.Body = append(json.RawMessage(nil), data...)
	return nil
}

func decodeNode(raw rawNode) (ast.Node, error) {
	loc := raw.Loc.toAST()
	switch raw.Type {
	case "Program":
		var f struct {
			Statements []rawNode `json:"statements"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		stmts, err := decodeStmts(f.Statements)
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(loc, stmts...), nil

	case "VarDecl":
		var f struct {
			Name    string   `json:"name"`
			VarType string   `json:"var_type"`
			Init    *rawNode `json:"init"`
			Const   bool     `json:"is_const"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		init, err := decodeOptionalExpr(f.Init)
		if err != nil {
			return nil, err
		}
		return ast.NewVarDecl(loc, f.Name, decodeType(f.VarType), init, f.Const), nil

	case "FuncDecl":
		var f struct {
			Name       string    `json:"name"`
			Params     []rawNode `json:"params"`
			ReturnType string    `json:"return_type"`
			Body       rawNode   `json:"body"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		params := make([]*ast.ParamDecl, 0, len(f.Params))
		for _, p := range f.Params {
			var pf struct {
				Name      string `json:"name"`
				ParamType string `json:"param_type"`
			}
			if err := json.Unmarshal(p.Body, &pf); err != nil {
				return nil, err
			}
			params = append(params, ast.NewParamDecl(p.Loc.toAST(), pf.Name, decodeType(pf.ParamType)))
		}
		body, err := decodeBlock(f.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewFuncDecl(loc, f.Name, params, decodeType(f.ReturnType), body), nil

	case "Block":
		var f struct {
			Statements []rawNode `json:"statements"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		stmts, err := decodeStmts(f.Statements)
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(loc, stmts...), nil

	case "Assign":
		var f struct {
			Target rawNode `json:"target"`
			Value  rawNode `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		target, err := decodeExpr(f.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(f.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(loc, target, value), nil

	case "If":
		var f struct {
			Cond rawNode  `json:"cond"`
			Then rawNode  `json:"then"`
			Else *rawNode `json:"else"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(f.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(f.Then)
		if err != nil {
			return nil, err
		}
		var els *ast.Block
		if f.Else != nil {
			els, err = decodeBlock(*f.Else)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewIf(loc, cond, then, els), nil

	case "While":
		var f struct {
			Cond rawNode `json:"cond"`
			Body rawNode `json:"body"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(f.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(f.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewWhile(loc, cond, body), nil

	case "Repeat":
		var f struct {
			Count rawNode `json:"count"`
			Body  rawNode `json:"body"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		count, err := decodeExpr(f.Count)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(f.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewRepeat(loc, count, body), nil

	case "ForEach":
		var f struct {
			IteratorName string  `json:"iterator_name"`
			Iterable     rawNode `json:"iterable"`
			Body         rawNode `json:"body"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		iterable, err := decodeExpr(f.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(f.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewForEach(loc, f.IteratorName, iterable, body), nil

	case "Return":
		var f struct {
			Value *rawNode `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		value, err := decodeOptionalExpr(f.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewReturn(loc, value), nil

	case "Break":
		return ast.NewBreak(loc), nil

	case "Continue":
		return ast.NewContinue(loc), nil

	case "ExprStmt":
		var f struct {
			X rawNode `json:"x"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		x, err := decodeExpr(f.X)
		if err != nil {
			return nil, err
		}
		return ast.NewExprStmt(loc, x), nil

	case "Display":
		var f struct {
			Value rawNode `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		value, err := decodeExpr(f.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewDisplay(loc, value), nil

	case "Ask":
		var f struct {
			Prompt *rawNode `json:"prompt"`
			Target string   `json:"target"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		prompt, err := decodeOptionalExpr(f.Prompt)
		if err != nil {
			return nil, err
		}
		return ast.NewAsk(loc, prompt, f.Target), nil

	case "Read":
		var f struct {
			Target string `json:"target"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		return ast.NewRead(loc, f.Target), nil

	case "SecureZone":
		var f struct {
			Body   rawNode `json:"body"`
			IsSafe bool    `json:"is_safe"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		body, err := decodeBlock(f.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewSecureZone(loc, body, f.IsSafe), nil

	case "BinaryOp":
		var f struct {
			Op    string  `json:"op"`
			Left  rawNode `json:"left"`
			Right rawNode `json:"right"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		left, err := decodeExpr(f.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(f.Right)
		if err != nil {
			return nil, err
		}
		op, err := decodeOperator(f.Op)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(loc, op, left, right), nil

	case "UnaryOp":
		var f struct {
			Op string  `json:"op"`
			X  rawNode `json:"x"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		x, err := decodeExpr(f.X)
		if err != nil {
			return nil, err
		}
		op, err := decodeOperator(f.Op)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(loc, op, x), nil

	case "TernaryOp":
		var f struct {
			Value rawNode `json:"value"`
			Lower rawNode `json:"lower"`
			Upper rawNode `json:"upper"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		value, err := decodeExpr(f.Value)
		if err != nil {
			return nil, err
		}
		lower, err := decodeExpr(f.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := decodeExpr(f.Upper)
		if err != nil {
			return nil, err
		}
		return ast.NewBetween(loc, value, lower, upper), nil

	case "LiteralInt":
		var f struct {
			Value int64 `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		return ast.NewLiteralInt(loc, f.Value), nil

	case "LiteralFloat":
		var f struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		return ast.NewLiteralFloat(loc, f.Value), nil

	case "LiteralString":
		var f struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		return ast.NewLiteralString(loc, f.Value), nil

	case "LiteralBool":
		var f struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		return ast.NewLiteralBool(loc, f.Value), nil

	case "Identifier":
		var f struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		return ast.NewIdentifier(loc, f.Name), nil

	case "FuncCall":
		var f struct {
			Name string    `json:"name"`
			Args []rawNode `json:"args"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		args := make([]ast.Expr, 0, len(f.Args))
		for _, a := range f.Args {
			e, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		return ast.NewFuncCall(loc, f.Name, args...), nil

	case "Index":
		var f struct {
			Array rawNode `json:"array"`
			Index rawNode `json:"index"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		array, err := decodeExpr(f.Array)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(f.Index)
		if err != nil {
			return nil, err
		}
		return ast.NewIndex(loc, array, index), nil

	case "ListExpr":
		var f struct {
			Elements []rawNode `json:"elements"`
		}
		if err := json.Unmarshal(raw.Body, &f); err != nil {
			return nil, err
		}
		elems := make([]ast.Expr, 0, len(f.Elements))
		for _, e := range f.Elements {
			x, err := decodeExpr(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, x)
		}
		return ast.NewList(loc, elems...), nil

	default:
		return nil, fmt.Errorf("frontend: unknown node type %q at %s:%d", raw.Type, loc.Filename, loc.FirstLine)
	}
}

func decodeStmts(raws []rawNode) ([]ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0, len(raws))
	for _, r := range raws {
		n, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		s, ok := n.(ast.Stmt)
		if !ok {
			return nil, fmt.Errorf("frontend: %q is not a statement", r.Type)
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func decodeExpr(r rawNode) (ast.Expr, error) {
	n, err := decodeNode(r)
	if err != nil {
		return nil, err
	}
	e, ok := n.(ast.Expr)
	if !ok {
		return nil, fmt.Errorf("frontend: %q is not an expression", r.Type)
	}
	return e, nil
}

func decodeOptionalExpr(r *rawNode) (ast.Expr, error) {
	if r == nil {
		return nil, nil
	}
	return decodeExpr(*r)
}

func decodeBlock(r rawNode) (*ast.Block, error) {
	n, err := decodeNode(r)
	if err != nil {
		return nil, err
	}
	b, ok := n.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("frontend: %q is not a block", r.Type)
	}
	return b, nil
}

func decodeType(s string) ast.DataType {
	switch s {
	case "number":
		return ast.Number
	case "decimal":
		return ast.Decimal
	case "text":
		return ast.Text
	case "flag":
		return ast.Flag
	case "list":
		return ast.List
	case "nothing":
		return ast.Nothing
	case "function":
		return ast.Function
	default:
		return ast.Unknown
	}
}

func decodeOperator(s string) (ast.Operator, error) {
	switch s {
	case "add", "+":
		return ast.OpAdd, nil
	case "sub", "-":
		return ast.OpSub, nil
	case "mul", "*":
		return ast.OpMul, nil
	case "div", "/":
		return ast.OpDiv, nil
	case "mod", "%":
		return ast.OpMod, nil
	case "pow", "^":
		return ast.OpPow, nil
	case "eq", "==":
		return ast.OpEq, nil
	case "neq", "!=":
		return ast.OpNeq, nil
	case "lt", "<":
		return ast.OpLt, nil
	case "gt", ">":
		return ast.OpGt, nil
	case "lte", "<=":
		return ast.OpLte, nil
	case "gte", ">=":
		return ast.OpGte, nil
	case "and":
		return ast.OpAnd, nil
	case "or":
		return ast.OpOr, nil
	case "not":
		return ast.OpNot, nil
	case "neg":
		return ast.OpNeg, nil
	case "pos":
		return ast.OpPos, nil
	default:
		return 0, fmt.Errorf("frontend: unknown operator %q", s)
	}
}
