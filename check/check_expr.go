/*
File    : ctfaw/check/check_expr.go

Expression typing rules (spec §4.5).
*/
package check

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/parser"
	"github.com/unmappedstack/ctfaw/types"
)

func (c *Checker) typeOf(expr parser.Expr, env *Env) (types.Type, error) {
	switch e := expr.(type) {
	case *parser.IntLit:
		return types.Type{Base: types.Any}, nil

	case *parser.FloatLit:
		return types.Type{Base: types.F64}, nil

	case *parser.CharLit:
		return types.Type{Base: types.Char}, nil

	case *parser.StrLit:
		return types.Type{Base: types.Char, PtrDepth: 1}, nil

	case *parser.Ident:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return types.Type{}, c.rep.Report(diag.Check, e.P, "undefined variable %q", e.Name)
		}
		return t, nil

	case *parser.Ref:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return types.Type{}, c.rep.Report(diag.Check, e.P, "undefined variable %q", e.Name)
		}
		return t.Ref(), nil

	case *parser.Deref:
		t, err := c.typeOf(e.Operand, env)
		if err != nil {
			return types.Type{}, err
		}
		deref, ok := t.Deref()
		if !ok {
			return types.Type{}, c.rep.Report(diag.Check, e.P, "cannot dereference non-pointer type %s", t)
		}
		e.ResolvedType = deref
		return deref, nil

	case *parser.Cast:
		original, err := c.typeOf(e.Value, env)
		if err != nil {
			return types.Type{}, err
		}
		e.Original = original
		return e.Target, nil

	case *parser.FuncCall:
		return c.typeOfCall(e, env)

	case *parser.Binary:
		return c.typeOfBinary(e, env)

	case *parser.Unary:
		operandType, err := c.typeOf(e.Operand, env)
		if err != nil {
			return types.Type{}, err
		}
		e.ResolvedType = operandType
		if e.Op == types.LogNot {
			return types.Type{Base: types.Bool}, nil
		}
		return operandType, nil
	}
	return types.Type{}, c.rep.Report(diag.Check, expr.Pos(), "internal error: unhandled expression node")
}

func (c *Checker) typeOfBinary(e *parser.Binary, env *Env) (types.Type, error) {
	left, err := c.typeOf(e.Left, env)
	if err != nil {
		return types.Type{}, err
	}
	right, err := c.typeOf(e.Right, env)
	if err != nil {
		return types.Type{}, err
	}
	unified, ok := types.Unify(left, right)
	if !ok {
		return types.Type{}, c.rep.Report(diag.Check, e.P, "mismatched operand types %s and %s for %s", left, right, e.Op)
	}
	e.ResolvedType = unified
	if e.Op.IsComparison() {
		return types.Type{Base: types.Bool}, nil
	}
	return unified, nil
}

func (c *Checker) typeOfCall(e *parser.FuncCall, env *Env) (types.Type, error) {
	fn, ok := c.prog.Funcs[e.Name]
	if !ok {
		return types.Type{}, c.rep.Report(diag.Check, e.P, "call to undefined function %q", e.Name)
	}
	sig := fn.Sig
	minArgs := len(sig.Params)
	if sig.IsVariadic {
		minArgs = sig.VarargsIdx
	}
	if sig.IsVariadic {
		if len(e.Args) < minArgs {
			return types.Type{}, c.rep.Report(diag.Check, e.P, "function %q expects at least %d arguments, got %d", e.Name, minArgs, len(e.Args))
		}
	} else if len(e.Args) != minArgs {
		return types.Type{}, c.rep.Report(diag.Check, e.P, "function %q expects %d arguments, got %d", e.Name, minArgs, len(e.Args))
	}
	for i, arg := range e.Args {
		argType, err := c.typeOf(arg, env)
		if err != nil {
			return types.Type{}, err
		}
		if i >= len(sig.Params) {
			continue // trailing variadic argument: no declared type to check against
		}
		if _, ok := types.Unify(argType, sig.Params[i].Type); !ok {
			return types.Type{}, c.rep.Report(diag.Check, arg.Pos(), "argument %d to %q: cannot use value of type %s as %s",
				i+1, e.Name, argType, sig.Params[i].Type)
		}
	}
	return sig.RetType, nil
}
