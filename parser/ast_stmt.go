/*
File    : ctfaw/parser/ast_stmt.go

Statement tree node types (spec §3 Statement) plus the function-table
and global-variable records the top-level parser produces.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

// Stmt is any statement tree node.
type Stmt interface {
	Pos() diag.Pos
	stmtNode()
}

// Define is `let`/`const NAME : TYPE = EXPR ;`.
type Define struct {
	IsConst      bool
	Name         string
	DeclaredType types.Type
	Expr         Expr
	P            diag.Pos
}

// Assign is `NAME = EXPR ;` or, with Deref set, `*NAME = EXPR ;`.
// ResolvedType is filled in by the type checker.
type Assign struct {
	Deref        bool
	Name         string
	ResolvedType types.Type
	Expr         Expr
	P            diag.Pos
}

// CallStmt wraps a FuncCall expression whose result is discarded.
type CallStmt struct {
	Call *FuncCall
	P    diag.Pos
}

// RegBind pairs an inline-asm register name with the variable bound to
// it (spec §4.3 inline-asm form).
type RegBind struct {
	Reg  string
	Name string
}

// InlineAsm is a raw `asm( STRING : ios : ios : regs );` block.
type InlineAsm struct {
	Text     string
	Inputs   []RegBind
	Outputs  []RegBind
	Clobbers []string
	P        diag.Pos
}

// Return is `return EXPR ;`.
type Return struct {
	Value Expr
	P     diag.Pos
}

// If is `if ( COND ) { BODY }`.
type If struct {
	Cond Expr
	Body []Stmt
	P    diag.Pos
}

// While is `while ( COND ) { BODY }`.
type While struct {
	Cond Expr
	Body []Stmt
	P    diag.Pos
}

// Extern is `extern NAME ( TYPE, ... ) -> TYPE ;`, inserted into the
// function table with a nil body (spec §3 FuncTableVal).
type Extern struct {
	Name string
	Sig  FuncSig
	P    diag.Pos
}

func (s *Define) Pos() diag.Pos    { return s.P }
func (s *Assign) Pos() diag.Pos    { return s.P }
func (s *CallStmt) Pos() diag.Pos  { return s.P }
func (s *InlineAsm) Pos() diag.Pos { return s.P }
func (s *Return) Pos() diag.Pos    { return s.P }
func (s *If) Pos() diag.Pos        { return s.P }
func (s *While) Pos() diag.Pos     { return s.P }
func (s *Extern) Pos() diag.Pos    { return s.P }

func (*Define) stmtNode()    {}
func (*Assign) stmtNode()    {}
func (*CallStmt) stmtNode()  {}
func (*InlineAsm) stmtNode() {}
func (*Return) stmtNode()    {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*Extern) stmtNode()    {}

// Param is one `NAME : TYPE` function parameter.
type Param struct {
	Name string
	Type types.Type
}

// FuncSig is a function's signature: its parameters, return type, and
// (when IsVariadic) the index of the first variadic argument (spec §3
// FuncSig, supplemented with the extern `...` varargs marker).
type FuncSig struct {
	Params     []Param
	RetType    types.Type
	IsVariadic bool
	VarargsIdx int
}

// FuncTableVal is one function-table entry. Body == nil means the
// function is externally defined (spec §3 FuncTableVal).
type FuncTableVal struct {
	Sig  FuncSig
	Body []Stmt
}

// GlobalVar is a top-level `const`; its Value must have been reduced to
// a single integer at parse time by the top-level parser's evalConstInt
// (spec §3 GlobalVar).
type GlobalVar struct {
	Name  string
	Type  types.Type
	Value uint64
	P     diag.Pos
}

// Program is the top-level parser's output: every function declaration
// (in source order, keyed by name) plus every global constant.
type Program struct {
	Funcs     map[string]*FuncTableVal
	FuncOrder []string
	Globals   []GlobalVar
}
