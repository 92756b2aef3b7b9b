/*
File    : ctfaw/parser/ast_expr.go

Expression tree node types (spec §3 BranchChild). The teacher models its
AST as an interface with a full Visitor double-dispatch (Accept/Visit
pairs across ~15 methods) because it has a single generic tree-walking
evaluator. CTFAW's expression tree is walked by three independent,
unrelated consumers (optimize, check, codegen), each of which only cares
about a handful of node kinds at a time, so each node kind is instead a
plain struct implementing the narrow Expr interface and consumers use a
Go type switch. This keeps the shape the teacher's nodes have (a tagged
union carrying a source position) without forcing every future consumer
to implement every node kind.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

// Expr is any expression tree node. Every node carries the source
// position of its leading token (spec §3 invariant).
type Expr interface {
	Pos() diag.Pos
	exprNode()
}

// Binary is a two-operand subtree joined by op. ResolvedType is filled in
// by the type checker with the unified operand type (spec §9's design
// note on propagating resolved types forward to codegen, extended here
// from Assign to every Binary so signed/unsigned instruction selection
// doesn't need to re-derive types during code generation).
type Binary struct {
	Left, Right  Expr
	Op           types.Operation
	ResolvedType types.Type
	P            diag.Pos
}

// Unary is a single-operand prefix: LogNot (!) or BitNot (~). ResolvedType
// is filled in by the type checker the same way as Binary.ResolvedType.
type Unary struct {
	Op           types.Operation
	Operand      Expr
	ResolvedType types.Type
	P            diag.Pos
}

// CharLit is a single-byte character literal.
type CharLit struct {
	Value byte
	P     diag.Pos
}

// IntLit is an integer literal, typed Any until the type checker binds
// it to a concrete width. Boolean literals fold into IntLit(0|1) at
// parse time (spec §4.2 leaf cases).
type IntLit struct {
	Value uint64
	P     diag.Pos
}

// FloatLit is a 64-bit floating point literal.
type FloatLit struct {
	Value float64
	P     diag.Pos
}

// StrLit is a string literal; codegen materializes it into .rodata.
type StrLit struct {
	Value string
	P     diag.Pos
}

// Ident is a bare variable or global reference.
type Ident struct {
	Name string
	P    diag.Pos
}

// Ref is an address-of expression, &name.
type Ref struct {
	Name string
	P    diag.Pos
}

// Deref is a pointer-indirection expression, *operand. ResolvedType is
// filled in by the type checker with the pointee type, the same way as
// Binary.ResolvedType, so codegen knows how wide a load to emit.
type Deref struct {
	Operand      Expr
	ResolvedType types.Type
	P            diag.Pos
}

// Cast is `value as Target`. Original is filled in by the type checker
// with the pre-cast type of Value, once it is known (spec §3 lifecycle).
type Cast struct {
	Value    Expr
	Target   types.Type
	Original types.Type
	P        diag.Pos
}

// FuncCall is a call expression, also reused verbatim as a statement
// when its result is discarded.
type FuncCall struct {
	Name string
	Args []Expr
	P    diag.Pos
}

func (e *Binary) Pos() diag.Pos   { return e.P }
func (e *Unary) Pos() diag.Pos    { return e.P }
func (e *CharLit) Pos() diag.Pos  { return e.P }
func (e *IntLit) Pos() diag.Pos   { return e.P }
func (e *FloatLit) Pos() diag.Pos { return e.P }
func (e *StrLit) Pos() diag.Pos   { return e.P }
func (e *Ident) Pos() diag.Pos    { return e.P }
func (e *Ref) Pos() diag.Pos      { return e.P }
func (e *Deref) Pos() diag.Pos    { return e.P }
func (e *Cast) Pos() diag.Pos     { return e.P }
func (e *FuncCall) Pos() diag.Pos { return e.P }

func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*CharLit) exprNode()  {}
func (*IntLit) exprNode()   {}
func (*FloatLit) exprNode() {}
func (*StrLit) exprNode()   {}
func (*Ident) exprNode()    {}
func (*Ref) exprNode()      {}
func (*Deref) exprNode()    {}
func (*Cast) exprNode()     {}
func (*FuncCall) exprNode() {}
