/*
File : ctfaw/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	rep := diag.NewReporter(src, "test.ctf")
	toks, err := New(src, rep).Tokenize()
	require.NoError(t, err)
	return toks
}

func TestLexerOperatorsAndPunctuation(t *testing.T) {
	toks := tokenize(t, `( ) { } , : ; = -> ** * / + - % & | ^ ~ ! == != < <= > >= << >> && ||`)
	wantOps := []types.Operation{
		types.Pow, types.Mul, types.Div, types.Add, types.Sub, types.Mod,
		types.BitAnd, types.BitOr, types.BitXor, types.BitNot, types.LogNot,
		types.Eq, types.NotEq, types.Less, types.LessEq, types.Greater, types.GreaterEq,
		types.LShift, types.RShift, types.LogAnd, types.LogOr,
	}
	assert.Equal(t, KindLparen, toks[0].Kind)
	assert.Equal(t, KindRparen, toks[1].Kind)
	assert.Equal(t, KindLbrace, toks[2].Kind)
	assert.Equal(t, KindRbrace, toks[3].Kind)
	assert.Equal(t, KindComma, toks[4].Kind)
	assert.Equal(t, KindColon, toks[5].Kind)
	assert.Equal(t, KindEndln, toks[6].Kind)
	assert.Equal(t, KindAssign, toks[7].Kind)
	assert.Equal(t, KindArrow, toks[8].Kind)

	var gotOps []types.Operation
	for _, tok := range toks[9:] {
		require.Equal(t, KindOp, tok.Kind)
		gotOps = append(gotOps, tok.Op)
	}
	assert.Equal(t, wantOps, gotOps)
}

func TestLexerStarAndAmpersandAreSharedTokens(t *testing.T) {
	toks := tokenize(t, `a * b & c`)
	assert.Equal(t, types.Mul, toks[1].Op)
	assert.Equal(t, types.BitAnd, toks[3].Op)
}

func TestLexerIntAndFloatLiterals(t *testing.T) {
	toks := tokenize(t, `123 3.14 0`)
	require.Len(t, toks, 3)
	assert.Equal(t, LitInt, toks[0].Lit.Kind)
	assert.EqualValues(t, 123, toks[0].Lit.Int)
	assert.Equal(t, LitFloat, toks[1].Lit.Kind)
	assert.InDelta(t, 3.14, toks[1].Lit.Float, 1e-9)
	assert.Equal(t, LitInt, toks[2].Lit.Kind)
}

func TestLexerStringAndCharLiterals(t *testing.T) {
	toks := tokenize(t, `"hi\n" 'a' '\t'`)
	require.Len(t, toks, 3)
	assert.Equal(t, "hi\n", toks[0].Lit.Str)
	assert.Equal(t, byte('a'), toks[1].Lit.Char)
	assert.Equal(t, byte('\t'), toks[2].Lit.Char)
}

func TestLexerIdentifiersKeywordsAndTypes(t *testing.T) {
	toks := tokenize(t, `let const fn if else elseif while return extern foo u8 u32* bool**`)
	assert.Equal(t, KindLet, toks[0].Kind)
	assert.Equal(t, KindConst, toks[1].Kind)
	assert.Equal(t, KindFn, toks[2].Kind)
	assert.Equal(t, KindIf, toks[3].Kind)
	assert.Equal(t, KindElse, toks[4].Kind)
	assert.Equal(t, KindElseIf, toks[5].Kind)
	assert.Equal(t, KindWhile, toks[6].Kind)
	assert.Equal(t, KindReturn, toks[7].Kind)
	assert.Equal(t, KindExtern, toks[8].Kind)

	require.Equal(t, KindLiteral, toks[9].Kind)
	assert.Equal(t, "foo", toks[9].Lit.Ident)

	require.Equal(t, KindTypeRef, toks[10].Kind)
	assert.Equal(t, types.Type{Base: types.U8}, toks[10].Type)

	require.Equal(t, KindTypeRef, toks[11].Kind)
	assert.Equal(t, types.Type{Base: types.U32, PtrDepth: 1}, toks[11].Type)

	require.Equal(t, KindTypeRef, toks[12].Kind)
	assert.Equal(t, types.Type{Base: types.Bool, PtrDepth: 2}, toks[12].Type)
}

func TestLexerAsKeywordIsAnOperator(t *testing.T) {
	toks := tokenize(t, `x as u32`)
	require.Len(t, toks, 3)
	assert.Equal(t, KindOp, toks[1].Kind)
	assert.Equal(t, types.As, toks[1].Op)
	assert.Equal(t, KindTypeRef, toks[2].Kind)
}

func TestLexerBooleanLiterals(t *testing.T) {
	toks := tokenize(t, `true false`)
	require.Len(t, toks, 2)
	assert.Equal(t, LitBool, toks[0].Lit.Kind)
	assert.True(t, toks[0].Lit.Bool)
	assert.False(t, toks[1].Lit.Bool)
}

func TestLexerLineComment(t *testing.T) {
	toks := tokenize(t, "1 + 2 // trailing comment\n+ 3")
	require.Len(t, toks, 5)
	assert.Equal(t, types.Add, toks[3].Op)
}

func TestLexerTracksRowAndColumn(t *testing.T) {
	toks := tokenize(t, "1\n  22")
	require.Len(t, toks, 2)
	assert.Equal(t, diag.Pos{Row: 1, Col: 1}, toks[0].Pos)
	assert.Equal(t, diag.Pos{Row: 2, Col: 3}, toks[1].Pos)
}

func TestLexerCharLiteralTracksPosition(t *testing.T) {
	toks := tokenize(t, "1\n  'a'")
	require.Len(t, toks, 2)
	assert.Equal(t, LitChar, toks[1].Lit.Kind)
	assert.Equal(t, diag.Pos{Row: 2, Col: 3}, toks[1].Pos)
}

func TestLexerConstScenarioFromSpec(t *testing.T) {
	// "const A: u64 = 2 + 3 * 4;" => lexer yields 10 tokens.
	toks := tokenize(t, `const A: u64 = 2 + 3 * 4;`)
	assert.Len(t, toks, 10)
}

func TestLexerUnterminatedStringIsFatal(t *testing.T) {
	src := `"unterminated`
	rep := diag.NewReporter(src, "test.ctf")
	_, err := New(src, rep).Tokenize()
	assert.Error(t, err)
	assert.True(t, rep.HasErrors())
	assert.Equal(t, diag.Lexer, rep.Errors()[0].Component)
}

func TestLexerUnknownEscapeIsFatal(t *testing.T) {
	src := `"bad \q escape"`
	rep := diag.NewReporter(src, "test.ctf")
	_, err := New(src, rep).Tokenize()
	assert.Error(t, err)
}

func TestLexerUnrecognizedByteIsFatal(t *testing.T) {
	src := "let x: u8 = 1 @ 2;"
	rep := diag.NewReporter(src, "test.ctf")
	_, err := New(src, rep).Tokenize()
	assert.Error(t, err)
}
