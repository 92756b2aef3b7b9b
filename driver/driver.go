/*
File    : ctfaw/driver/driver.go

Package driver sequences the compiler pipeline lex→parse→optimize→
check→codegen→assemble→link→run (spec §5, §6) and owns the external
process steps (`nasm`, `ld`) the compiler stages themselves never touch.
Grounded on the teacher's main/main.go executeFileWithRecovery (read
file, run pipeline, recover panics, report) generalized from a single
parse-eval step to the full multi-stage compiler pipeline, and on
std/os.go's exec() builtin for the os/exec invocation idiom.
*/
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/unmappedstack/ctfaw/check"
	"github.com/unmappedstack/ctfaw/codegen"
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/optimize"
	"github.com/unmappedstack/ctfaw/parser"
)

// Stop names how far the pipeline runs past assembly generation
// (spec §6 CLI: -S stops after assembly, -c stops after the object
// file, the default links and, with -r, also runs the result).
type Stop int

const (
	StopNone  Stop = iota // produce an executable (and run it, if Options.Run)
	StopAsm               // -S: write the .asm file and stop
	StopObjct             // -c: assemble to .o and stop
)

// Options configures one driver.Run invocation, mirroring the CLI flags
// of spec §6.
type Options struct {
	InputPath  string
	OutputPath string // base output path; extension is adjusted per Stop
	Stop       Stop
	Run        bool // -r: invoke the linked executable after linking
	Colorless  bool
	Stdout     *os.File
	Stderr     *os.File
}

// Result reports what the driver produced and, when Options.Run was set,
// the exit code of the executed program.
type Result struct {
	AsmPath  string
	ObjPath  string
	ExePath  string
	ExitCode int
	Ran      bool
}

// Run executes the full pipeline against Options.InputPath, recovering
// from any internal panic the way the teacher's executeFileWithRecovery
// does, and reporting it as a DRIVER diagnostic instead of crashing the
// process (spec §7).
func Run(opts Options) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("[DRIVER] internal error: %v", r)
		}
	}()

	source, readErr := os.ReadFile(opts.InputPath)
	if readErr != nil {
		return res, fmt.Errorf("[DRIVER] could not read %q: %w", opts.InputPath, readErr)
	}

	// CTFAW_SRC_FILENAME is exported as the public convention naming the
	// input file (spec §5, §6). The reporter itself is handed the file name
	// and source text directly and does not read the variable.
	os.Setenv("CTFAW_SRC_FILENAME", opts.InputPath)

	rep := diag.NewReporter(string(source), opts.InputPath)
	rep.Colorless = opts.Colorless

	prog, asm, compileErr := Compile(string(source), rep)
	if compileErr != nil {
		return res, reportErr(rep, compileErr)
	}
	_ = prog

	base := opts.OutputPath
	if base == "" {
		base = strings.TrimSuffix(opts.InputPath, filepath.Ext(opts.InputPath))
	}

	asmPath := base + ".asm"
	if err := os.WriteFile(asmPath, []byte(asm), 0644); err != nil {
		return res, fmt.Errorf("[DRIVER] could not write %q: %w", asmPath, err)
	}
	res.AsmPath = asmPath
	if opts.Stop == StopAsm {
		return res, nil
	}

	objPath := base + ".o"
	if err := assemble(asmPath, objPath); err != nil {
		return res, err
	}
	res.ObjPath = objPath
	if opts.Stop == StopObjct {
		return res, nil
	}

	exePath := base
	if err := link(objPath, exePath); err != nil {
		return res, err
	}
	res.ExePath = exePath

	if opts.Run {
		code, runErr := runExe(exePath)
		if runErr != nil {
			return res, runErr
		}
		res.Ran = true
		res.ExitCode = code
	}
	return res, nil
}

// Compile runs lex→parse→optimize→check→codegen over source and returns
// the checked program and its generated NASM text. Exposed separately
// from Run so the repl package can drive the same pipeline without
// touching the filesystem or spawning processes.
func Compile(source string, rep *diag.Reporter) (*parser.Program, string, error) {
	toks, err := lexer.New(source, rep).Tokenize()
	if err != nil {
		return nil, "", err
	}
	prog, err := parser.New(toks, rep).ParseProgram()
	if err != nil {
		return nil, "", err
	}
	optimize.FoldProgram(prog)
	if err := check.New(prog, rep).Check(); err != nil {
		return nil, "", err
	}
	asm, err := codegen.New(prog, rep).Generate()
	if err != nil {
		return nil, "", err
	}
	return prog, asm, nil
}

// assemble invokes nasm to turn an .asm file into an ELF64 object file.
func assemble(asmPath, objPath string) error {
	cmd := exec.Command("nasm", "-f", "elf64", asmPath, "-o", objPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("[DRIVER] nasm failed: %w\n%s", err, out)
	}
	return nil
}

// link invokes ld to produce an executable from the assembled object,
// against the system C library so that extern libc calls resolve.
func link(objPath, exePath string) error {
	cmd := exec.Command("ld", "-o", exePath, objPath,
		"-dynamic-linker", "/lib64/ld-linux-x86-64.so.2",
		"-lc")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("[DRIVER] ld failed: %w\n%s", err, out)
	}
	return nil
}

// runExe executes the linked program, inheriting the driver's own
// stdio streams, and returns its exit code.
func runExe(exePath string) (int, error) {
	abs, err := filepath.Abs(exePath)
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(abs)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()
	if runErr == nil {
		return 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, runErr
}

// reportErr renders every diagnostic the reporter collected (normally
// just the one fatal diagnostic, per spec §7) into a single error.
func reportErr(rep *diag.Reporter, cause error) error {
	if rep.HasErrors() {
		return fmt.Errorf("%s", rep.RenderAll())
	}
	return cause
}
