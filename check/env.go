/*
File    : ctfaw/check/env.go

Env is the type checker's scoped variable environment (spec §4.5):
globals at the root, extended by each function's parameters, then
sequentially by each local Define, and nested again for If/While
bodies. Grounded on the teacher's scope/scope.go parent-chained Scope,
generalized from a runtime-object binding to a types.Type binding and
carrying the let/const distinction needed by the reassignment check
(SPEC_FULL supplemented feature 3).
*/
package check

import "github.com/unmappedstack/ctfaw/types"

// Env is one level of the variable environment chain. A nil Parent
// marks the root (global) environment.
type Env struct {
	vars   map[string]types.Type
	consts map[string]bool
	Parent *Env
}

// NewEnv creates a child environment of parent (nil for the global
// environment).
func NewEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]types.Type),
		consts: make(map[string]bool),
		Parent: parent,
	}
}

// Child returns a fresh environment inheriting e's bindings, used for
// If/While bodies (spec §4.5: "a fresh inherited copy").
func (e *Env) Child() *Env {
	return NewEnv(e)
}

// Define binds name to t in this environment, shadowing any outer
// binding of the same name.
func (e *Env) Define(name string, t types.Type, isConst bool) {
	e.vars[name] = t
	e.consts[name] = isConst
}

// Lookup searches this environment and its ancestors for name.
func (e *Env) Lookup(name string) (types.Type, bool) {
	for env := e; env != nil; env = env.Parent {
		if t, ok := env.vars[name]; ok {
			return t, true
		}
	}
	return types.Type{}, false
}

// IsConst reports whether name is bound as a const anywhere in the
// chain. Every global is registered as a const (the grammar only
// allows `const` at top level), so this alone enforces "a function may
// read but never assign a global" (SPEC_FULL supplemented feature 4).
func (e *Env) IsConst(name string) bool {
	for env := e; env != nil; env = env.Parent {
		if _, ok := env.vars[name]; ok {
			return env.consts[name]
		}
	}
	return false
}
