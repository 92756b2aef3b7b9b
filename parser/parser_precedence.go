/*
File    : ctfaw/parser/parser_precedence.go

Operator precedence table (spec §4.2). Lower number binds tighter;
the split algorithm in parser_expressions.go looks for the operator with
the *loosest* binding (highest number) at paren depth 0, since that is
the root of a left-associative parse tree.
*/
package parser

import "github.com/unmappedstack/ctfaw/types"

// precedence returns op's binding level, or 0 if op never participates
// in a binary split (i.e. it is always unary: LogNot, BitNot).
func precedence(op types.Operation) int {
	switch op {
	case types.As:
		return 1
	case types.LogAnd, types.LogOr:
		return 2
	case types.Pow:
		return 4
	case types.Mul, types.Div, types.Mod:
		return 5
	case types.Add, types.Sub,
		types.Eq, types.NotEq, types.Less, types.LessEq, types.Greater, types.GreaterEq:
		return 6
	case types.BitAnd, types.BitXor, types.BitOr:
		return 7
	case types.LShift, types.RShift:
		return 8
	}
	return 0
}

// unarySkippable is the set of operators overloaded between a binary and
// a unary-prefix reading: & (Ref), * (Deref), ! (LogNot), ~ (BitNot).
func unarySkippable(op types.Operation) bool {
	switch op {
	case types.BitAnd, types.Mul, types.LogNot, types.BitNot:
		return true
	}
	return false
}
