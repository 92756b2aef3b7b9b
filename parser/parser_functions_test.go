package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

func parseProgramSrc(t *testing.T, src string) (*Program, error) {
	t.Helper()
	rep := diag.NewReporter(src, "test.ctf")
	return New(lexAll(t, src), rep).ParseProgram()
}

func TestParseProgramFunctionWithParamsAndReturn(t *testing.T) {
	prog, err := parseProgramSrc(t, `
fn add(a: u32, b: u32) -> u32 {
    return a + b;
}
`)
	require.NoError(t, err)
	fn, ok := prog.Funcs["add"]
	require.True(t, ok)
	require.Len(t, fn.Sig.Params, 2)
	assert.Equal(t, "a", fn.Sig.Params[0].Name)
	assert.Equal(t, types.Type{Base: types.U32}, fn.Sig.RetType)
	require.Len(t, fn.Body, 1)
}

func TestParseProgramDefaultReturnType(t *testing.T) {
	prog, err := parseProgramSrc(t, `
fn main() {
    let x: u32 = 1;
}
`)
	require.NoError(t, err)
	assert.Equal(t, types.Type{Base: types.U32}, prog.Funcs["main"].Sig.RetType)
}

func TestParseProgramGlobalConstFoldedToInt(t *testing.T) {
	// the spec §8 scenario: const A: u64 = 2 + 3 * 4; => A == 14.
	prog, err := parseProgramSrc(t, "const A: u64 = 2 + 3 * 4;")
	require.NoError(t, err)
	require.Len(t, prog.Globals, 1)
	assert.Equal(t, "A", prog.Globals[0].Name)
	assert.EqualValues(t, 14, prog.Globals[0].Value)
}

func TestParseProgramGlobalConstNonFoldableRejected(t *testing.T) {
	_, err := parseProgramSrc(t, "fn f() -> u32 { return 1; } const A: u32 = f();")
	assert.Error(t, err)
}

func TestParseProgramLetAtTopLevelRejected(t *testing.T) {
	_, err := parseProgramSrc(t, "let x: u32 = 1;")
	assert.Error(t, err)
}

func TestParseProgramDuplicateFunctionRejected(t *testing.T) {
	_, err := parseProgramSrc(t, `
fn f() -> u32 { return 1; }
fn f() -> u32 { return 2; }
`)
	assert.Error(t, err)
}

func TestParseProgramExternInsertedIntoFuncTable(t *testing.T) {
	prog, err := parseProgramSrc(t, `
extern puts(char*) -> i32;
fn main() -> u32 {
    return 0;
}
`)
	require.NoError(t, err)
	ext, ok := prog.Funcs["puts"]
	require.True(t, ok)
	assert.Nil(t, ext.Body)
}

func TestParseProgramFuncOrderPreservesSourceOrder(t *testing.T) {
	prog, err := parseProgramSrc(t, `
fn b() -> u32 { return 0; }
fn a() -> u32 { return 0; }
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, prog.FuncOrder)
}
