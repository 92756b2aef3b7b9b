package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/parser"
)

func checkSrc(t *testing.T, src string) (*parser.Program, error) {
	t.Helper()
	rep := diag.NewReporter(src, "test.ctf")
	toks, err := lexer.New(src, rep).Tokenize()
	require.NoError(t, err)
	prog, err := parser.New(toks, rep).ParseProgram()
	require.NoError(t, err)
	return prog, New(prog, rep).Check()
}

func TestCheckAddingTwoU32sOK(t *testing.T) {
	_, err := checkSrc(t, `
fn add(a: u32, b: u32) -> u32 {
    return a + b;
}
`)
	assert.NoError(t, err)
}

func TestCheckMismatchedReturnTypeRejected(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> bool {
    return 1 as i8;
}
`)
	assert.Error(t, err)
}

func TestCheckDefineAndUseLocal(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> u32 {
    let x: u32 = 5;
    return x;
}
`)
	assert.NoError(t, err)
}

func TestCheckAssignToConstRejected(t *testing.T) {
	_, err := checkSrc(t, `
const A: u32 = 1;
fn f() -> u32 {
    A = 2;
    return A;
}
`)
	assert.Error(t, err)
}

func TestCheckUndefinedVariableRejected(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> u32 {
    return y;
}
`)
	assert.Error(t, err)
}

func TestCheckDerefAssignRequiresPointer(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> u32 {
    let x: u32 = 5;
    *x = 6;
    return x;
}
`)
	assert.Error(t, err)
}

func TestCheckDerefAssignThroughPointerOK(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> u32 {
    let x: u32 = 5;
    let p: u32* = &x;
    *p = 6;
    return x;
}
`)
	assert.NoError(t, err)
}

func TestCheckCallArgCountMismatchRejected(t *testing.T) {
	_, err := checkSrc(t, `
fn add(a: u32, b: u32) -> u32 {
    return a + b;
}
fn f() -> u32 {
    return add(1);
}
`)
	assert.Error(t, err)
}

func TestCheckCallArgTypeMismatchRejected(t *testing.T) {
	_, err := checkSrc(t, `
fn take(a: char*) -> u32 {
    return 0;
}
fn f() -> u32 {
    return take(5 as i8);
}
`)
	assert.Error(t, err)
}

func TestCheckComparisonYieldsBool(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> bool {
    let x: u32 = 1;
    return x == 1;
}
`)
	assert.NoError(t, err)
}

func TestCheckExternVariadicAllowsExtraArgs(t *testing.T) {
	_, err := checkSrc(t, `
extern printf(char*, ...) -> i32;
fn f() -> u32 {
    printf("%d %d", 1, 2);
    return 0;
}
`)
	assert.NoError(t, err)
}

func TestCheckWhileLoopBodyAssignOK(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> u32 {
    let i: u32 = 0;
    while (i < 10) {
        i = i + 1;
    }
    return i;
}
`)
	assert.NoError(t, err)
}

func TestCheckInlineAsmUndefinedOutputRejected(t *testing.T) {
	_, err := checkSrc(t, `
fn f() -> u32 {
    asm("nop" : : "rax"|missing : "rax");
    return 0;
}
`)
	assert.Error(t, err)
}
