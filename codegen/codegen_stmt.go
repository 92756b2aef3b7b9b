/*
File    : ctfaw/codegen/codegen_stmt.go

Statement lowering (spec §4.6): Define/Assign bind or update a frame
slot, Return evaluates its value and runs the shared epilogue, If/While
lower to `sectN` labels, InlineAsm saves clobbers, binds inputs/outputs
to their named registers and splices in the raw asm text verbatim.
*/
package codegen

import (
	"github.com/unmappedstack/ctfaw/parser"
)

func (fg *funcGen) emitStmts(stmts []parser.Stmt) error {
	for _, s := range stmts {
		if err := fg.emitStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (fg *funcGen) emitStmt(s parser.Stmt) error {
	switch st := s.(type) {
	case *parser.Define:
		if err := fg.emitExpr(st.Expr); err != nil {
			return err
		}
		offset := fg.nextSlot * 8
		fg.nextSlot++
		lv := localVar{offset: offset, typ: st.DeclaredType}
		fg.locals[st.Name] = lv
		fg.g.emit("mov %s %s, %s", sizePrefix(lv.typ), memOperand(lv), sizedReg("rax", lv.typ.Size()))
		return nil

	case *parser.Assign:
		lv, err := fg.lookup(st.Name, st.P)
		if err != nil {
			return err
		}
		if err := fg.emitExpr(st.Expr); err != nil {
			return err
		}
		target := st.ResolvedType
		if st.Deref {
			fg.g.emit("mov rcx, %s", memOperand(lv))
			fg.g.emit("mov %s [rcx], %s", sizePrefix(target), sizedReg("rax", target.Size()))
			return nil
		}
		fg.g.emit("mov %s %s, %s", sizePrefix(target), memOperand(lv), sizedReg("rax", target.Size()))
		return nil

	case *parser.CallStmt:
		return fg.emitExpr(st.Call)

	case *parser.Return:
		if err := fg.emitExpr(st.Value); err != nil {
			return err
		}
		fg.emitEpilogue()
		return nil

	case *parser.If:
		if err := fg.emitExpr(st.Cond); err != nil {
			return err
		}
		after := fg.g.nextLabel()
		fg.g.emit("cmp al, 0")
		fg.g.emit("je %s", after)
		if err := fg.emitStmts(st.Body); err != nil {
			return err
		}
		fg.g.label(after)
		return nil

	case *parser.While:
		top := fg.g.nextLabel()
		after := fg.g.nextLabel()
		fg.g.label(top)
		if err := fg.emitExpr(st.Cond); err != nil {
			return err
		}
		fg.g.emit("cmp al, 0")
		fg.g.emit("je %s", after)
		if err := fg.emitStmts(st.Body); err != nil {
			return err
		}
		fg.g.emit("jmp %s", top)
		fg.g.label(after)
		return nil

	case *parser.InlineAsm:
		return fg.emitInlineAsm(st)

	case *parser.Extern:
		return nil // codegen only needs Funcs/FuncOrder, already updated by check
	}
	return fg.g.errorf(s.Pos(), "unsupported statement shape at code generation")
}

func (fg *funcGen) emitInlineAsm(st *parser.InlineAsm) error {
	for _, reg := range st.Clobbers {
		fg.g.emit("push %s", reg)
	}
	for _, in := range st.Inputs {
		lv, err := fg.lookup(in.Name, st.P)
		if err != nil {
			return err
		}
		fg.g.emit("mov %s, %s %s", sizedReg(in.Reg, lv.typ.Size()), sizePrefix(lv.typ), memOperand(lv))
	}
	fg.g.text.WriteString(st.Text)
	fg.g.text.WriteString("\n")
	for _, out := range st.Outputs {
		lv, err := fg.lookup(out.Name, st.P)
		if err != nil {
			return err
		}
		fg.g.emit("mov %s %s, %s", sizePrefix(lv.typ), memOperand(lv), sizedReg(out.Reg, lv.typ.Size()))
	}
	for i := len(st.Clobbers) - 1; i >= 0; i-- {
		fg.g.emit("pop %s", st.Clobbers[i])
	}
	return nil
}
