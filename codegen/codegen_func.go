/*
File    : ctfaw/codegen/codegen_func.go

Per-function prologue, frame layout and epilogue (spec §4.6). Every
local (including each register-passed parameter) gets an 8-byte stack
slot regardless of its declared size; offsets are assigned in the order
the walk encounters them, starting at 0 and counting upward.
*/
package codegen

import (
	"fmt"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/parser"
	"github.com/unmappedstack/ctfaw/types"
)

// localVar is one frame slot: a register-passed parameter, a stack-passed
// parameter (addressed above rbp), or a local Define (addressed below rbp).
type localVar struct {
	offset  int
	typ     types.Type
	aboveFP bool
}

// funcGen carries the per-function state used while lowering one
// function body: its frame layout and its declared return type.
type funcGen struct {
	g        *Generator
	locals   map[string]localVar
	nextSlot int
	frame    int
	retType  types.Type
}

func align16(n int) int {
	return (n + 15) &^ 15
}

// countLocals recursively counts the Define statements in stmts, including
// those nested inside If/While bodies, since every one needs a frame slot
// reserved up front by the prologue's `sub rsp, FRAME`.
func countLocals(stmts []parser.Stmt) int {
	n := 0
	for _, s := range stmts {
		switch st := s.(type) {
		case *parser.Define:
			n++
		case *parser.If:
			n += countLocals(st.Body)
		case *parser.While:
			n += countLocals(st.Body)
		}
	}
	return n
}

func (g *Generator) emitFunc(name string, fn *parser.FuncTableVal) error {
	numParams := len(fn.Sig.Params)
	regParams := numParams
	if regParams > 6 {
		regParams = 6
	}
	frame := align16((countLocals(fn.Body) + regParams) * 8)

	g.label(name)
	g.emit("push rbp")
	g.emit("mov rbp, rsp")
	g.emit("sub rsp, %d", frame)

	fg := &funcGen{g: g, locals: make(map[string]localVar), retType: fn.Sig.RetType, frame: frame}

	for i, p := range fn.Sig.Params {
		if i < 6 {
			offset := fg.nextSlot * 8
			fg.nextSlot++
			fg.locals[p.Name] = localVar{offset: offset, typ: p.Type}
			reg := sizedReg(argRegs[i], p.Type.Size())
			g.emit("mov %s [rbp - %d], %s", sizePrefix(p.Type), offset, reg)
		} else {
			offset := 16 + (i-6)*8
			fg.locals[p.Name] = localVar{offset: offset, typ: p.Type, aboveFP: true}
		}
	}

	if err := fg.emitStmts(fn.Body); err != nil {
		return err
	}

	g.emit("xor eax, eax")
	fg.emitEpilogue()
	return nil
}

// emitEpilogue emits the `add rsp, FRAME; pop rbp; ret` sequence shared by
// every Return and by the function's fall-through path (spec §8
// invariant 7).
func (fg *funcGen) emitEpilogue() {
	fg.g.emit("add rsp, %d", fg.frame)
	fg.g.emit("pop rbp")
	fg.g.emit("ret")
}

// memOperand renders the NASM memory operand for a frame slot.
func memOperand(lv localVar) string {
	if lv.aboveFP {
		return fmt.Sprintf("[rbp + %d]", lv.offset)
	}
	return fmt.Sprintf("[rbp - %d]", lv.offset)
}

func (fg *funcGen) lookup(name string, pos diag.Pos) (localVar, error) {
	lv, ok := fg.locals[name]
	if !ok {
		return localVar{}, fg.g.errorf(pos, "unknown variable %q at code generation", name)
	}
	return lv, nil
}
