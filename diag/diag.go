/*
File    : ctfaw/diag/diag.go

Package diag collects and renders compiler diagnostics. Every pipeline
stage (lexer, parser, type checker, code generator) reports through the
same Reporter so that user-visible failures share one format: component
tag, source location, message, and the offending source line with a caret
under the column.
*/
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Component names the pipeline stage that raised a diagnostic.
type Component string

const (
	Lexer   Component = "LEXER"
	Parser  Component = "PARSER"
	Check   Component = "ANALYSIS"
	Codegen Component = "CODEGEN"
	Driver  Component = "DRIVER"
)

// Pos is a 1-based (row, column) source location, attached to every token
// and expression node.
type Pos struct {
	Row int
	Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Diagnostic is a single fatal compiler error. The pipeline halts at the
// first one raised; there is no error recovery (spec Non-goals).
type Diagnostic struct {
	Component Component
	Pos       Pos
	Message   string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s at %s", d.Component, d.Message, d.Pos)
}

// Reporter renders diagnostics against the original source text and keeps
// a running list, mirroring the collect-then-report convention the rest of
// this codebase's ambient tooling uses.
type Reporter struct {
	Source    string
	FileName  string
	Colorless bool

	diags []*Diagnostic

	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
}

// NewReporter builds a Reporter bound to one compilation's source text.
// The driver passes the input path as fileName directly; it also exports
// the same path as CTFAW_SRC_FILENAME, which the Reporter does not read.
func NewReporter(source, fileName string) *Reporter {
	return &Reporter{
		Source:   source,
		FileName: fileName,
		red:      color.New(color.FgRed),
		yellow:   color.New(color.FgYellow),
		cyan:     color.New(color.FgCyan),
	}
}

// Report records a diagnostic and returns it as an error. Callers return
// the result immediately — CTFAW never attempts to recover from a
// diagnostic and continue the same stage.
func (r *Reporter) Report(component Component, pos Pos, format string, args ...interface{}) error {
	d := &Diagnostic{Component: component, Pos: pos, Message: fmt.Sprintf(format, args...)}
	r.diags = append(r.diags, d)
	return d
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool { return len(r.diags) > 0 }

// Errors returns every diagnostic recorded so far, in report order.
func (r *Reporter) Errors() []*Diagnostic { return r.diags }

// sourceLine returns the 1-indexed source line for a row, or "" if out of
// range (e.g. a synthetic position with row 0).
func (r *Reporter) sourceLine(row int) string {
	lines := strings.Split(r.Source, "\n")
	if row < 1 || row > len(lines) {
		return ""
	}
	return lines[row-1]
}

// Render formats a diagnostic as the user-visible failure block described
// in the spec: message, source line, caret, component tag.
func (r *Reporter) Render(d *Diagnostic) string {
	var b strings.Builder

	tag := fmt.Sprintf("[%s]", d.Component)
	if r.Colorless {
		fmt.Fprintf(&b, "%s %s (%s:%s)\n", tag, d.Message, r.FileName, d.Pos)
	} else {
		fmt.Fprintf(&b, "%s %s (%s:%s)\n", r.red.Sprint(tag), d.Message, r.FileName, d.Pos)
	}

	line := r.sourceLine(d.Pos.Row)
	if line != "" {
		fmt.Fprintf(&b, "  %s\n", line)
		col := d.Pos.Col
		if col < 1 {
			col = 1
		}
		caret := strings.Repeat(" ", col-1) + "^"
		if r.Colorless {
			fmt.Fprintf(&b, "  %s\n", caret)
		} else {
			fmt.Fprintf(&b, "  %s\n", r.yellow.Sprint(caret))
		}
	}
	return b.String()
}

// RenderAll renders every recorded diagnostic in order.
func (r *Reporter) RenderAll() string {
	var b strings.Builder
	for _, d := range r.diags {
		b.WriteString(r.Render(d))
	}
	return b.String()
}
