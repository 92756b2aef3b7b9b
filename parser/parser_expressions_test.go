package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/types"
)

func lexAll(t *testing.T, src string) []lexer.Token {
	t.Helper()
	rep := diag.NewReporter(src, "test.ctf")
	toks, err := lexer.New(src, rep).Tokenize()
	require.NoError(t, err)
	return toks
}

func parseExprSrc(t *testing.T, src string) Expr {
	t.Helper()
	rep := diag.NewReporter(src, "test.ctf")
	e, err := ParseExpr(lexAll(t, src), rep)
	require.NoError(t, err)
	return e
}

func TestParseExprLeftAssociativeAdd(t *testing.T) {
	e := parseExprSrc(t, "1 + 2 + 3")
	b, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Add, b.Op)
	inner, ok := b.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Add, inner.Op)
	assert.IsType(t, &IntLit{}, b.Right)
}

func TestParseExprPrecedenceShiftLoosestAdditiveTighter(t *testing.T) {
	// per the precedence table, << binds loosest, so this is (1 + 2) << 3.
	e := parseExprSrc(t, "1 + 2 << 3")
	b, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.LShift, b.Op)
	_, ok = b.Left.(*Binary)
	require.True(t, ok)
}

func TestParseExprParensOverridePrecedence(t *testing.T) {
	e := parseExprSrc(t, "(1 + 2) * 3")
	b, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Mul, b.Op)
	left, ok := b.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Add, left.Op)
}

func TestParseExprAddressOf(t *testing.T) {
	e := parseExprSrc(t, "&x")
	r, ok := e.(*Ref)
	require.True(t, ok)
	assert.Equal(t, "x", r.Name)
}

func TestParseExprDeref(t *testing.T) {
	e := parseExprSrc(t, "*p")
	d, ok := e.(*Deref)
	require.True(t, ok)
	assert.IsType(t, &Ident{}, d.Operand)
}

func TestParseExprMultiplyVsDerefDisambiguation(t *testing.T) {
	e := parseExprSrc(t, "a * b")
	b, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Mul, b.Op)
}

func TestParseExprModuloParsesAsBinary(t *testing.T) {
	e := parseExprSrc(t, "a % b")
	b, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Mod, b.Op)
}

func TestParseExprModuloSameTierAsMulDiv(t *testing.T) {
	// per precedence(), % sits with * and /, so this parses as
	// (a % b) * c, not a % (b * c).
	e := parseExprSrc(t, "a % b * c")
	b, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Mul, b.Op)
	left, ok := b.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, types.Mod, left.Op)
}

func TestParseExprUnaryNot(t *testing.T) {
	e := parseExprSrc(t, "!x")
	u, ok := e.(*Unary)
	require.True(t, ok)
	assert.Equal(t, types.LogNot, u.Op)
}

func TestParseExprCast(t *testing.T) {
	e := parseExprSrc(t, "x as u32")
	c, ok := e.(*Cast)
	require.True(t, ok)
	assert.Equal(t, types.Type{Base: types.U32}, c.Target)
	assert.IsType(t, &Ident{}, c.Value)
}

func TestParseExprFuncCall(t *testing.T) {
	e := parseExprSrc(t, "add(1, 2 + 3)")
	call, ok := e.(*FuncCall)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
	assert.IsType(t, &IntLit{}, call.Args[0])
	assert.IsType(t, &Binary{}, call.Args[1])
}

func TestParseExprFuncCallNoArgs(t *testing.T) {
	e := parseExprSrc(t, "getval()")
	call, ok := e.(*FuncCall)
	require.True(t, ok)
	assert.Empty(t, call.Args)
}

func TestParseExprBoolFoldsToInt(t *testing.T) {
	e := parseExprSrc(t, "true")
	i, ok := e.(*IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 1, i.Value)
}

func TestParseExprStringLiteral(t *testing.T) {
	e := parseExprSrc(t, `"hi"`)
	s, ok := e.(*StrLit)
	require.True(t, ok)
	assert.Equal(t, "hi", s.Value)
}

func TestParseExprMalformedReportsError(t *testing.T) {
	rep := diag.NewReporter("", "test.ctf")
	_, err := ParseExpr(lexAll(t, "1 +"), rep)
	assert.Error(t, err)
}
