package semantic

import "github.com/naturelang/naturec/pkg/ast"

// TypesCompatible reports whether a value of type source may be used
// where target is expected: equal types, both numeric, or either side
// Unknown/Error (the analyzer's recovery types).
func TypesCompatible(target, source ast.DataType) bool {
	if target == source {
		return true
	}
	if isRecovery(target) || isRecovery(source) {
		return true
	}
	if IsNumeric(target) && IsNumeric(source) {
		return true
	}
	return false
}

func isRecovery(t ast.DataType) bool {
	return t == ast.Unknown || t == ast.Error
}

// IsNumeric reports whether values of type t participate in arithmetic.
func IsNumeric(t ast.DataType) bool {
	return t == ast.Number || t == ast.Decimal
}

// IsBoolean reports whether values of type t participate in boolean logic.
func IsBoolean(t ast.DataType) bool {
	return t == ast.Flag
}

// BinaryResultType computes the result type of a binary operator given its
// operand types, per spec.md §4.1. ok is false when the operand types are
// not valid for op; the caller reports the corresponding error.
func BinaryResultType(op ast.Operator, left, right ast.DataType) (result ast.DataType, ok bool) {
	switch op {
	case ast.OpAdd:
		if left == ast.Text || right == ast.Text {
			return ast.Text, true
		}
		return arithmeticResult(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		return arithmeticResult(left, right)
	case ast.OpMod:
		if !numericOrRecovery(left) || !numericOrRecovery(right) {
			return ast.Error, false
		}
		return ast.Number, true
	case ast.OpPow:
		return arithmeticResult(left, right)
	case ast.OpEq, ast.OpNeq:
		// Equality is permissive: any two compatible-enough types compare.
		return ast.Flag, true
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		if comparable(left, right) {
			return ast.Flag, true
		}
		return ast.Error, false
	case ast.OpAnd, ast.OpOr:
		if boolOrRecovery(left) && boolOrRecovery(right) {
			return ast.Flag, true
		}
		return ast.Error, false
	default:
		return ast.Error, false
	}
}

func arithmeticResult(left, right ast.DataType) (ast.DataType, bool) {
	if !numericOrRecovery(left) || !numericOrRecovery(right) {
		return ast.Error, false
	}
	if left == ast.Decimal || right == ast.Decimal {
		return ast.Decimal, true
	}
	return ast.Number, true
}

func numericOrRecovery(t ast.DataType) bool {
	return IsNumeric(t) || isRecovery(t)
}

func boolOrRecovery(t ast.DataType) bool {
	return IsBoolean(t) || isRecovery(t)
}

// comparable reports whether left and right may be compared with
// <, >, <=, >=: equal types, both numeric, or either side Unknown/Error.
func comparable(left, right ast.DataType) bool {
	if left == right {
		return true
	}
	if isRecovery(left) || isRecovery(right) {
		return true
	}
	return IsNumeric(left) && IsNumeric(right)
}

// UnaryResultType computes the result type of a unary operator.
func UnaryResultType(op ast.Operator, operand ast.DataType) (result ast.DataType, ok bool) {
	switch op {
	case ast.OpNeg, ast.OpPos:
		if numericOrRecovery(operand) {
			return operand, true
		}
		if operand == ast.Unknown {
			return ast.Number, true
		}
		return ast.Error, false
	case ast.OpNot:
		if boolOrRecovery(operand) {
			return ast.Flag, true
		}
		return ast.Error, false
	default:
		return ast.Error, false
	}
}
