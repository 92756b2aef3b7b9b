package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

func parseStmtsSrc(t *testing.T, src string) []Stmt {
	t.Helper()
	rep := diag.NewReporter(src, "test.ctf")
	p := New(lexAll(t, src), rep)
	stmts, err := p.ParseStatements()
	require.NoError(t, err)
	return stmts
}

func TestParseLetDefine(t *testing.T) {
	stmts := parseStmtsSrc(t, "let x: u32 = 1 + 2;")
	require.Len(t, stmts, 1)
	d, ok := stmts[0].(*Define)
	require.True(t, ok)
	assert.False(t, d.IsConst)
	assert.Equal(t, "x", d.Name)
	assert.Equal(t, types.Type{Base: types.U32}, d.DeclaredType)
	assert.IsType(t, &Binary{}, d.Expr)
}

func TestParseConstDefine(t *testing.T) {
	stmts := parseStmtsSrc(t, "const N: u64 = 5;")
	d := stmts[0].(*Define)
	assert.True(t, d.IsConst)
}

func TestParseAssign(t *testing.T) {
	stmts := parseStmtsSrc(t, "x = 9;")
	a, ok := stmts[0].(*Assign)
	require.True(t, ok)
	assert.False(t, a.Deref)
	assert.Equal(t, "x", a.Name)
}

func TestParseDerefAssign(t *testing.T) {
	stmts := parseStmtsSrc(t, "*p = 9;")
	a, ok := stmts[0].(*Assign)
	require.True(t, ok)
	assert.True(t, a.Deref)
	assert.Equal(t, "p", a.Name)
}

func TestParseReturn(t *testing.T) {
	stmts := parseStmtsSrc(t, "return 1 + 2;")
	r, ok := stmts[0].(*Return)
	require.True(t, ok)
	assert.IsType(t, &Binary{}, r.Value)
}

func TestParseCallStatement(t *testing.T) {
	stmts := parseStmtsSrc(t, "foo(1, x);")
	c, ok := stmts[0].(*CallStmt)
	require.True(t, ok)
	assert.Equal(t, "foo", c.Call.Name)
}

func TestParseIf(t *testing.T) {
	stmts := parseStmtsSrc(t, "if (x == 1) { return 1; }")
	i, ok := stmts[0].(*If)
	require.True(t, ok)
	assert.IsType(t, &Binary{}, i.Cond)
	require.Len(t, i.Body, 1)
}

func TestParseWhile(t *testing.T) {
	stmts := parseStmtsSrc(t, "while (x < 10) { x = x + 1; }")
	w, ok := stmts[0].(*While)
	require.True(t, ok)
	require.Len(t, w.Body, 1)
}

func TestParseNestedIfInsideWhile(t *testing.T) {
	stmts := parseStmtsSrc(t, "while (x < 10) { if (x == 5) { return x; } x = x + 1; }")
	w := stmts[0].(*While)
	require.Len(t, w.Body, 2)
	assert.IsType(t, &If{}, w.Body[0])
	assert.IsType(t, &Assign{}, w.Body[1])
}

func TestParseExternFixedArity(t *testing.T) {
	stmts := parseStmtsSrc(t, "extern exit(i32) -> u32;")
	e, ok := stmts[0].(*Extern)
	require.True(t, ok)
	assert.Equal(t, "exit", e.Name)
	require.Len(t, e.Sig.Params, 1)
	assert.False(t, e.Sig.IsVariadic)
	assert.Equal(t, types.Type{Base: types.U32}, e.Sig.RetType)
}

func TestParseExternVariadic(t *testing.T) {
	stmts := parseStmtsSrc(t, "extern printf(char*, ...) -> i32;")
	e := stmts[0].(*Extern)
	require.True(t, e.Sig.IsVariadic)
	assert.Equal(t, 1, e.Sig.VarargsIdx)
	assert.Equal(t, types.Type{Base: types.I32}, e.Sig.RetType)
}

func TestParseExternDefaultReturnType(t *testing.T) {
	stmts := parseStmtsSrc(t, "extern bare();")
	e := stmts[0].(*Extern)
	assert.Equal(t, types.Type{Base: types.U32}, e.Sig.RetType)
}

func TestParseInlineAsm(t *testing.T) {
	stmts := parseStmtsSrc(t, `asm("mov rax, rbx" : "rbx"|x : "rax"|y : "rcx");`)
	a, ok := stmts[0].(*InlineAsm)
	require.True(t, ok)
	assert.Equal(t, "mov rax, rbx", a.Text)
	require.Len(t, a.Inputs, 1)
	assert.Equal(t, RegBind{Reg: "rbx", Name: "x"}, a.Inputs[0])
	require.Len(t, a.Outputs, 1)
	assert.Equal(t, RegBind{Reg: "rax", Name: "y"}, a.Outputs[0])
	assert.Equal(t, []string{"rcx"}, a.Clobbers)
}

func TestParseInlineAsmEmptyLists(t *testing.T) {
	stmts := parseStmtsSrc(t, `asm("nop" : : : );`)
	a := stmts[0].(*InlineAsm)
	assert.Empty(t, a.Inputs)
	assert.Empty(t, a.Outputs)
	assert.Empty(t, a.Clobbers)
}
