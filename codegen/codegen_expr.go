/*
File    : ctfaw/codegen/codegen_expr.go

Expression lowering (spec §4.6): every Expr evaluates into rax. Ident
and Deref, the two narrow value-producing leaves, load through
funcGen.loadFull (registers.go) so rax never carries stale upper-bit
garbage into a later cmp/shr/div — see DESIGN.md Open Question 5.
Binary operators evaluate left, push it, evaluate right, pop the left
value back into rcx, then combine — non-commutative operators (sub,
div, shr, and shl alongside shr since both need their count operand in
cl after the same rearrangement) xchg rax/rcx first to restore
left/right order (SPEC_FULL Open Question decision, see DESIGN.md).
*/
package codegen

import (
	"github.com/unmappedstack/ctfaw/parser"
	"github.com/unmappedstack/ctfaw/types"
)

func (fg *funcGen) emitExpr(e parser.Expr) error {
	switch ex := e.(type) {
	case *parser.IntLit:
		fg.g.emit("mov rax, %d", ex.Value)
		return nil

	case *parser.CharLit:
		fg.g.emit("mov rax, %d", ex.Value)
		return nil

	case *parser.FloatLit:
		return fg.g.errorf(ex.P, "floating-point literals are not supported by code generation")

	case *parser.StrLit:
		label := fg.g.internString(ex.Value)
		fg.g.emit("lea rax, [%s]", label)
		return nil

	case *parser.Ident:
		if _, local := fg.locals[ex.Name]; !local {
			for _, gv := range fg.g.prog.Globals {
				if gv.Name == ex.Name {
					fg.g.emit("mov rax, %d", gv.Value)
					return nil
				}
			}
		}
		lv, err := fg.lookup(ex.Name, ex.P)
		if err != nil {
			return err
		}
		fg.loadFull("rax", lv.typ, memOperand(lv))
		return nil

	case *parser.Ref:
		lv, err := fg.lookup(ex.Name, ex.P)
		if err != nil {
			return err
		}
		fg.g.emit("lea rax, %s %s", sizePrefix(lv.typ), memOperand(lv))
		return nil

	case *parser.Deref:
		if err := fg.emitExpr(ex.Operand); err != nil {
			return err
		}
		fg.loadFull("rax", ex.ResolvedType, "[rax]")
		return nil

	case *parser.Cast:
		return fg.emitCast(ex)

	case *parser.FuncCall:
		return fg.emitCall(ex)

	case *parser.Unary:
		return fg.emitUnary(ex)

	case *parser.Binary:
		return fg.emitBinary(ex)
	}
	return fg.g.errorf(e.Pos(), "unsupported expression shape at code generation")
}

func (fg *funcGen) emitUnary(ex *parser.Unary) error {
	if err := fg.emitExpr(ex.Operand); err != nil {
		return err
	}
	switch ex.Op {
	case types.LogNot:
		fg.g.emit("test rax, rax")
		fg.g.emit("setnz al")
		fg.g.emit("xor rax, 1")
		return nil
	case types.BitNot:
		fg.g.emit("not %s", sizedReg("rax", ex.ResolvedType.Size()))
		return nil
	}
	return fg.g.errorf(ex.P, "unsupported unary operator %s at code generation", ex.Op)
}

// noncommutative operators need rax/rcx swapped back into (left, right)
// order after the standard evaluate-left-push-evaluate-right-pop sequence.
func noncommutative(op types.Operation) bool {
	switch op {
	case types.Sub, types.Div, types.Mod, types.Pow, types.RShift, types.LShift,
		types.Less, types.LessEq, types.Greater, types.GreaterEq:
		return true
	}
	return false
}

// litValue extracts an immediate value from an Int/Char leaf, letting
// emitBinary fold a literal right-hand operand straight into the
// instruction's immediate form instead of round-tripping it through the
// stack (spec §8 scenario 2: `x + 1` lowers to `add eax, 1`, not a
// push/pop sequence).
func litValue(e parser.Expr) (uint64, bool) {
	switch v := e.(type) {
	case *parser.IntLit:
		return v.Value, true
	case *parser.CharLit:
		return uint64(v.Value), true
	}
	return 0, false
}

func (fg *funcGen) emitBinary(ex *parser.Binary) error {
	if lit, ok := litValue(ex.Right); ok {
		if done, err := fg.emitBinaryImmediate(ex, lit); done {
			return err
		}
	}

	if err := fg.emitExpr(ex.Left); err != nil {
		return err
	}
	fg.g.emit("push rax")
	if err := fg.emitExpr(ex.Right); err != nil {
		return err
	}
	fg.g.emit("pop rcx")
	if noncommutative(ex.Op) {
		fg.g.emit("xchg rax, rcx")
	}
	// after this point rax holds the left operand and rcx the right
	// operand for every non-commutative operator; commutative operators
	// skip the xchg (rax=right, rcx=left), which does not change their
	// result. Arithmetic runs at full 64-bit width
	// regardless of the operand type's declared size — the store that
	// eventually consumes the result narrows it via its own sized
	// register/memory operand, so no intermediate truncation is needed
	// here, and it sidesteps the 8-bit idiv quirk (quotient/remainder
	// packed into al/ah rather than a dedicated register pair).
	signed := ex.ResolvedType.IsSigned()

	switch ex.Op {
	case types.Add:
		fg.g.emit("add rax, rcx")
	case types.Sub:
		fg.g.emit("sub rax, rcx")
	case types.Mul:
		if signed {
			fg.g.emit("imul rax, rcx")
		} else {
			fg.g.emit("mul rcx")
		}
	case types.Div:
		fg.emitDivide(signed)
	case types.Mod:
		fg.emitDivide(signed)
		fg.g.emit("mov rax, rdx")
	case types.Pow:
		return fg.emitPow(signed)
	case types.BitAnd:
		fg.g.emit("and rax, rcx")
	case types.BitOr:
		fg.g.emit("or rax, rcx")
	case types.BitXor:
		fg.g.emit("xor rax, rcx")
	case types.LShift:
		fg.g.emit("shl rax, cl")
	case types.RShift:
		fg.g.emit("shr rax, cl")
	case types.LogAnd:
		fg.g.emit("and rax, rcx")
		fg.g.emit("setnz al")
		fg.g.emit("and rax, 1")
	case types.LogOr:
		fg.g.emit("or rax, rcx")
		fg.g.emit("setnz al")
		fg.g.emit("and rax, 1")
	case types.Eq, types.NotEq, types.Less, types.LessEq, types.Greater, types.GreaterEq:
		fg.g.emit("cmp rax, rcx")
		fg.g.emit("%s al", setcc(ex.Op, signed))
		fg.g.emit("and rax, 1")
	default:
		return fg.g.errorf(ex.P, "unsupported binary operator %s at code generation", ex.Op)
	}
	return nil
}

// emitBinaryImmediate handles the subset of operators with a direct
// reg-immediate instruction form, evaluating only the left operand and
// skipping the push/pop dance entirely. done is false when ex.Op has no
// such form, in which case the caller falls back to the general path.
func (fg *funcGen) emitBinaryImmediate(ex *parser.Binary, lit uint64) (bool, error) {
	switch ex.Op {
	case types.Add, types.Sub, types.BitAnd, types.BitOr, types.BitXor,
		types.Eq, types.NotEq, types.Less, types.LessEq, types.Greater, types.GreaterEq:
	default:
		return false, nil
	}
	if err := fg.emitExpr(ex.Left); err != nil {
		return true, err
	}
	raxSized := sizedReg("rax", ex.ResolvedType.Size())
	signed := ex.ResolvedType.IsSigned()
	switch ex.Op {
	case types.Add:
		fg.g.emit("add %s, %d", raxSized, lit)
	case types.Sub:
		fg.g.emit("sub %s, %d", raxSized, lit)
	case types.BitAnd:
		fg.g.emit("and %s, %d", raxSized, lit)
	case types.BitOr:
		fg.g.emit("or %s, %d", raxSized, lit)
	case types.BitXor:
		fg.g.emit("xor %s, %d", raxSized, lit)
	case types.Eq, types.NotEq, types.Less, types.LessEq, types.Greater, types.GreaterEq:
		fg.g.emit("cmp %s, %d", raxSized, lit)
		fg.g.emit("%s al", setcc(ex.Op, signed))
		fg.g.emit("and rax, 1")
	}
	return true, nil
}

// emitDivide performs the shared rax/rdx setup for Div and Mod: sign- or
// zero-extend rax into rdx:rax at 64-bit width, then divide by rcx.
func (fg *funcGen) emitDivide(signed bool) {
	if signed {
		fg.g.emit("cqo")
		fg.g.emit("idiv rcx")
	} else {
		fg.g.emit("xor rdx, rdx")
		fg.g.emit("div rcx")
	}
}

// emitPow lowers integer exponentiation (left ** right) via repeated
// multiplication; there is no single NASM instruction for it. rax holds
// the base, rcx the exponent on entry; r8 accumulates the result.
func (fg *funcGen) emitPow(signed bool) error {
	top := fg.g.nextLabel()
	after := fg.g.nextLabel()
	fg.g.emit("mov r8, 1")
	fg.g.label(top)
	fg.g.emit("cmp rcx, 0")
	fg.g.emit("je %s", after)
	if signed {
		fg.g.emit("imul r8, rax")
	} else {
		fg.g.emit("mov r9, rax")
		fg.g.emit("mov rax, r8")
		fg.g.emit("mul r9")
		fg.g.emit("mov r8, rax")
		fg.g.emit("mov rax, r9")
	}
	fg.g.emit("dec rcx")
	fg.g.emit("jmp %s", top)
	fg.g.label(after)
	fg.g.emit("mov rax, r8")
	return nil
}

func setcc(op types.Operation, signed bool) string {
	switch op {
	case types.Eq:
		return "setz"
	case types.NotEq:
		return "setnz"
	case types.Less:
		if signed {
			return "setl"
		}
		return "setb"
	case types.LessEq:
		if signed {
			return "setle"
		}
		return "setbe"
	case types.Greater:
		if signed {
			return "setg"
		}
		return "seta"
	case types.GreaterEq:
		if signed {
			return "setge"
		}
		return "setae"
	}
	return "setz"
}

func (fg *funcGen) emitCast(ex *parser.Cast) error {
	if err := fg.emitExpr(ex.Value); err != nil {
		return err
	}
	from, to := ex.Original, ex.Target
	if to.Size() > from.Size() && from.IsSigned() && to.IsSigned() {
		fg.g.emit("movsx rcx, %s", sizedReg("rax", from.Size()))
		fg.g.emit("mov rax, rcx")
	} else if to.Size() > from.Size() {
		fg.g.emit("movzx rcx, %s", sizedReg("rax", from.Size()))
		fg.g.emit("mov rax, rcx")
	}
	return nil
}

func (fg *funcGen) emitCall(ex *parser.FuncCall) error {
	if len(ex.Args) > 6 {
		for i := len(ex.Args) - 1; i >= 6; i-- {
			if err := fg.emitExpr(ex.Args[i]); err != nil {
				return err
			}
			fg.g.emit("push rax")
		}
	}
	regArgs := ex.Args
	if len(regArgs) > 6 {
		regArgs = regArgs[:6]
	}
	for i := len(regArgs) - 1; i >= 0; i-- {
		if err := fg.emitExpr(regArgs[i]); err != nil {
			return err
		}
		fg.g.emit("push rax")
	}
	for i := range regArgs {
		fg.g.emit("pop %s", argRegs[i])
	}
	fg.g.emit("call %s", ex.Name)
	if len(ex.Args) > 6 {
		fg.g.emit("add rsp, %d", (len(ex.Args)-6)*8)
	}
	return nil
}
