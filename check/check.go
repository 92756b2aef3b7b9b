/*
File    : ctfaw/check/check.go

Package check implements CTFAW's type checker (spec §4.5): it walks
each function with a scoped Env seeded by globals and parameters,
assigns types to every expression, and verifies assignment, return,
call-argument and operator compatibility. Grounded on the teacher's
eval package (the other tree-walker over the same node shapes), adapted
from producing runtime values to producing types.Type and diagnostics.
*/
package check

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/parser"
	"github.com/unmappedstack/ctfaw/types"
)

// Checker type-checks a parsed Program in place, filling in Cast.Original
// and Assign.ResolvedType as it goes (spec §3 lifecycle).
type Checker struct {
	prog   *parser.Program
	rep    *diag.Reporter
	global *Env
}

// New creates a Checker over prog, seeding the global environment with
// every top-level const (spec §4.5).
func New(prog *parser.Program, rep *diag.Reporter) *Checker {
	global := NewEnv(nil)
	for _, g := range prog.Globals {
		global.Define(g.Name, g.Type, true)
	}
	return &Checker{prog: prog, rep: rep, global: global}
}

// Check walks every function body in the program. The first type error
// encountered is fatal (spec §4.5, §7).
func (c *Checker) Check() error {
	for _, name := range c.prog.FuncOrder {
		fn := c.prog.Funcs[name]
		if fn.Body == nil {
			continue // extern: nothing to check
		}
		if err := c.checkFunc(fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkFunc(fn *parser.FuncTableVal) error {
	env := c.global.Child()
	for _, p := range fn.Sig.Params {
		env.Define(p.Name, p.Type, false)
	}
	return c.checkStmts(fn.Body, env, fn.Sig.RetType)
}

func (c *Checker) checkStmts(stmts []parser.Stmt, env *Env, retType types.Type) error {
	for _, s := range stmts {
		if err := c.checkStmt(s, env, retType); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(s parser.Stmt, env *Env, retType types.Type) error {
	switch st := s.(type) {
	case *parser.Define:
		exprType, err := c.typeOf(st.Expr, env)
		if err != nil {
			return err
		}
		if _, ok := types.Unify(exprType, st.DeclaredType); !ok {
			return c.rep.Report(diag.Check, st.P, "cannot initialize %q of type %s with value of type %s",
				st.Name, st.DeclaredType, exprType)
		}
		env.Define(st.Name, st.DeclaredType, st.IsConst)
		return nil

	case *parser.Assign:
		declared, ok := env.Lookup(st.Name)
		if !ok {
			return c.rep.Report(diag.Check, st.P, "undefined variable %q", st.Name)
		}
		if env.IsConst(st.Name) {
			return c.rep.Report(diag.Check, st.P, "cannot assign to const %q", st.Name)
		}
		target := declared
		if st.Deref {
			deref, ok := target.Deref()
			if !ok {
				return c.rep.Report(diag.Check, st.P, "cannot dereference non-pointer %q", st.Name)
			}
			target = deref
		}
		exprType, err := c.typeOf(st.Expr, env)
		if err != nil {
			return err
		}
		resolved, ok := types.Unify(exprType, target)
		if !ok {
			return c.rep.Report(diag.Check, st.P, "cannot assign value of type %s to %q of type %s",
				exprType, st.Name, target)
		}
		st.ResolvedType = resolved
		return nil

	case *parser.CallStmt:
		_, err := c.typeOf(st.Call, env)
		return err

	case *parser.InlineAsm:
		for _, in := range st.Inputs {
			if _, ok := env.Lookup(in.Name); !ok {
				return c.rep.Report(diag.Check, st.P, "undefined variable %q in asm input", in.Name)
			}
		}
		for _, out := range st.Outputs {
			if _, ok := env.Lookup(out.Name); !ok {
				return c.rep.Report(diag.Check, st.P, "undefined variable %q in asm output", out.Name)
			}
		}
		return nil

	case *parser.Return:
		exprType, err := c.typeOf(st.Value, env)
		if err != nil {
			return err
		}
		if _, ok := types.Unify(exprType, retType); !ok {
			return c.rep.Report(diag.Check, st.P, "return type mismatch: function returns %s, got %s", retType, exprType)
		}
		return nil

	case *parser.If:
		if _, err := c.typeOf(st.Cond, env); err != nil {
			return err
		}
		return c.checkStmts(st.Body, env.Child(), retType)

	case *parser.While:
		if _, err := c.typeOf(st.Cond, env); err != nil {
			return err
		}
		return c.checkStmts(st.Body, env.Child(), retType)

	case *parser.Extern:
		if _, exists := c.prog.Funcs[st.Name]; !exists {
			c.prog.Funcs[st.Name] = &parser.FuncTableVal{Sig: st.Sig}
			c.prog.FuncOrder = append(c.prog.FuncOrder, st.Name)
		}
		return nil
	}
	return nil
}
