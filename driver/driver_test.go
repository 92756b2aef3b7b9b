package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmappedstack/ctfaw/diag"
)

func TestCompileProducesAssembly(t *testing.T) {
	rep := diag.NewReporter("", "test.ctf")
	_, asm, err := Compile(`
fn f(x: u32) -> u32 {
    return x + 1;
}
`, rep)
	require.NoError(t, err)
	assert.Contains(t, asm, "global f")
	assert.Contains(t, asm, "[BITS 64]")
}

func TestCompileReportsTypeError(t *testing.T) {
	rep := diag.NewReporter("", "test.ctf")
	_, _, err := Compile(`
fn f() -> u32 {
    return undefined_name;
}
`, rep)
	require.Error(t, err)
	assert.True(t, rep.HasErrors())
	assert.Equal(t, diag.Check, rep.Errors()[0].Component)
}

func TestRunStopsAfterAssemblyWithStopAsm(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.ctf")
	require.NoError(t, os.WriteFile(src, []byte(`
fn f() -> u32 {
    return 0;
}
`), 0644))

	out := filepath.Join(dir, "prog")
	res, err := Run(Options{InputPath: src, OutputPath: out, Stop: StopAsm, Colorless: true})
	require.NoError(t, err)
	assert.FileExists(t, res.AsmPath)
	assert.Empty(t, res.ObjPath)
	assert.Empty(t, res.ExePath)
}

func TestRunSetsSrcFilenameEnvVar(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.ctf")
	require.NoError(t, os.WriteFile(src, []byte(`
fn f() -> u32 {
    return 0;
}
`), 0644))

	_, err := Run(Options{InputPath: src, Stop: StopAsm, Colorless: true})
	require.NoError(t, err)
	assert.Equal(t, src, os.Getenv("CTFAW_SRC_FILENAME"))
}

func TestRunReportsReadError(t *testing.T) {
	_, err := Run(Options{InputPath: "/nonexistent/path/does/not/exist.ctf", Stop: StopAsm})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read")
}

func TestRunRendersCompileDiagnostics(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.ctf")
	require.NoError(t, os.WriteFile(src, []byte(`
fn f() -> u32 {
    return nope;
}
`), 0644))

	_, err := Run(Options{InputPath: src, Stop: StopAsm, Colorless: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANALYSIS")
}
