/*
File    : ctfaw/optimize/fold.go

The actual arithmetic behind FoldChecked: spec §4.4 folds only
Add/Sub/Mul/Div over integers, leaving every other operator (Pow,
bitwise, comparisons, logical) for the type checker and code generator
to handle on live operands.
*/
package optimize

import (
	"github.com/unmappedstack/ctfaw/parser"
	"github.com/unmappedstack/ctfaw/types"
)

func foldOp(b *parser.Binary, left, right uint64) (*parser.IntLit, bool) {
	var v uint64
	switch b.Op {
	case types.Add:
		v = left + right
	case types.Sub:
		v = left - right
	case types.Mul:
		v = left * right
	case types.Div:
		if right == 0 {
			return nil, false
		}
		v = left / right
	default:
		return nil, false
	}
	return &parser.IntLit{Value: v, P: b.P}, true
}
