/*
File    : ctfaw/repl/repl.go

Package repl implements an interactive "ctfawc repl" mode. Grounded on
the teacher's repl/repl.go read-eval-print loop (readline + colored
banner + per-line panic recovery), repurposed from a tree-walking
evaluator to CTFAW's compile-assemble-link-run pipeline: each top-level
declaration the user types is accumulated into a scratch program,
type-checked immediately, and — once the accumulated program defines a
`main` function — assembled and linked with nasm/ld and executed, the
same external-process steps driver.Run uses for file mode.
*/
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/driver"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the banner/version metadata shown at startup and the
// accumulated source of every declaration accepted so far.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	acc string // every declaration accepted so far, newline-joined
}

// NewRepl builds a Repl instance with the given display metadata.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner, mirroring the teacher's
// layout exactly (separator, banner, separator, version line, separator,
// usage hints, separator).
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to ctfaw!")
	cyanColor.Fprintf(writer, "%s\n", "Type a const/fn/extern declaration and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Define `fn main() -> u32 { ... }` to compile, link, and run the program so far.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit, '.reset' to clear accumulated declarations.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop, reading whole declarations (balancing
// braces across lines) until exit.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		decl, ok := r.readDeclaration(rl, writer)
		if !ok {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		if decl == "" {
			continue
		}
		if decl == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		if decl == ".reset" {
			r.acc = ""
			cyanColor.Fprintf(writer, "accumulated declarations cleared\n")
			continue
		}
		r.executeWithRecovery(writer, decl)
	}
}

// readDeclaration reads lines from rl until braces balance (so a
// multi-line `fn ... { ... }` is read as one unit) or a single-line
// `const`/`extern` statement terminated by `;` is complete. Returns
// ok=false on EOF/readline error.
func (r *Repl) readDeclaration(rl *readline.Instance, writer io.Writer) (string, bool) {
	var buf strings.Builder
	depth := 0
	started := false

	for {
		line, err := rl.Readline()
		if err != nil {
			return "", false
		}
		trimmed := strings.TrimSpace(line)
		if !started {
			if trimmed == "" {
				continue
			}
			if trimmed == ".exit" || trimmed == ".reset" {
				return trimmed, true
			}
			started = true
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line)
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if depth <= 0 {
			text := strings.TrimSpace(buf.String())
			if depth < 0 {
				redColor.Fprintf(writer, "[REPL ERROR] unbalanced braces\n")
				return "", true
			}
			if strings.HasSuffix(text, "}") || strings.HasSuffix(text, ";") {
				rl.SaveHistory(text)
				return text, true
			}
			// single-line statement with no trailing ';' yet: keep reading
		}
	}
}

// executeWithRecovery type-checks decl against the accumulated program
// and, once a `main` function is present, compiles, assembles, links,
// and runs it — all with panic recovery so a compiler bug never crashes
// the REPL itself (spec §7 still applies to a single declaration, but
// the REPL loop as a whole survives it, unlike file mode).
func (r *Repl) executeWithRecovery(writer io.Writer, decl string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	candidate := r.acc
	if candidate != "" {
		candidate += "\n"
	}
	candidate += decl + "\n"

	rep := diag.NewReporter(candidate, "<repl>")
	_, _, err := driver.Compile(candidate, rep)
	if err != nil {
		if rep.HasErrors() {
			redColor.Fprintf(writer, "%s", rep.RenderAll())
		} else {
			redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		}
		return
	}

	r.acc = candidate
	if !strings.Contains(r.acc, "fn main") {
		yellowColor.Fprintf(writer, "ok (declaration accepted, no `main` yet)\n")
		return
	}

	dir, err := os.MkdirTemp("", "ctfawc-repl-*")
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "repl.ctf")
	if err := os.WriteFile(src, []byte(r.acc), 0644); err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}

	res, err := driver.Run(driver.Options{
		InputPath:  src,
		OutputPath: filepath.Join(dir, "repl"),
		Stop:       driver.StopNone,
		Run:        true,
		Colorless:  false,
	})
	if err != nil {
		redColor.Fprintf(writer, "%v\n", err)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", fmt.Sprintf("program exited with code %d", res.ExitCode))
}
