/*
File    : ctfaw/optimize/optimize.go

Package optimize implements CTFAW's one optimization pass: bottom-up
constant folding of integer arithmetic (spec §4.4). Grounded on the
teacher's eval package, which walks the same expression tree shape to
produce a runtime value; optimize performs the same walk but only ever
folds a pure-integer Add/Sub/Mul/Div subtree back into a single literal,
leaving everything else untouched. Invoked by the driver once per
parsed Program, after the top-level parser returns and before the type
checker runs.
*/
package optimize

import "github.com/unmappedstack/ctfaw/parser"

// Fold constant-folds expr and returns the (possibly) reduced tree. It
// never fails: unfoldable subtrees are returned unchanged. Callers that
// need a success flag use FoldChecked.
func Fold(expr parser.Expr) parser.Expr {
	folded, _ := FoldChecked(expr)
	return folded
}

// FoldChecked is fold_expr from spec §4.4: it folds bottom-up and
// reports whether the entire subtree collapsed to a single Int literal.
func FoldChecked(expr parser.Expr) (parser.Expr, bool) {
	switch e := expr.(type) {
	case *parser.IntLit:
		return e, true

	case *parser.Binary:
		left, leftOK := FoldChecked(e.Left)
		right, rightOK := FoldChecked(e.Right)
		e.Left, e.Right = left, right
		if !leftOK || !rightOK {
			return e, false
		}
		li, lok := left.(*parser.IntLit)
		ri, rok := right.(*parser.IntLit)
		if !lok || !rok {
			return e, false
		}
		if folded, ok := foldOp(e, li.Value, ri.Value); ok {
			return folded, true
		}
		return e, false

	case *parser.Unary:
		operand, _ := FoldChecked(e.Operand)
		e.Operand = operand
		return e, false

	case *parser.Deref:
		operand, _ := FoldChecked(e.Operand)
		e.Operand = operand
		return e, false

	case *parser.Cast:
		value, _ := FoldChecked(e.Value)
		e.Value = value
		return e, false

	case *parser.FuncCall:
		for i, arg := range e.Args {
			folded, _ := FoldChecked(arg)
			e.Args[i] = folded
		}
		return e, false

	default:
		return expr, false
	}
}

// FoldProgram folds every expression reachable from prog's function
// bodies in place: Define/Assign/Return expressions and If/While
// conditions, recursing into nested bodies. Global initializers are
// already folded by the top-level parser (spec §4.3) and are untouched.
func FoldProgram(prog *parser.Program) {
	for _, name := range prog.FuncOrder {
		fn := prog.Funcs[name]
		foldStmts(fn.Body)
	}
}

func foldStmts(stmts []parser.Stmt) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *parser.Define:
			st.Expr = Fold(st.Expr)
		case *parser.Assign:
			st.Expr = Fold(st.Expr)
		case *parser.Return:
			st.Value = Fold(st.Value)
		case *parser.CallStmt:
			for i, arg := range st.Call.Args {
				st.Call.Args[i] = Fold(arg)
			}
		case *parser.If:
			st.Cond = Fold(st.Cond)
			foldStmts(st.Body)
		case *parser.While:
			st.Cond = Fold(st.Cond)
			foldStmts(st.Body)
		}
	}
}
