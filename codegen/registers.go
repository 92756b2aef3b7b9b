/*
File    : ctfaw/codegen/registers.go

Register-name selection by operand size (spec §4.6). Grounded on the
x86 lowering idiom of the retrieved falcon assembler (per-size register
tables keyed off a fixed accumulator/scratch convention), adapted from
falcon's virtual-register/AT&T-syntax model to CTFAW's fixed
rax/rcx-accumulator, Intel/NASM-syntax model.
*/
package codegen

import "github.com/unmappedstack/ctfaw/types"

// sizedReg returns the NASM spelling of reg at width bytes (1, 2, 4 or 8).
func sizedReg(reg string, width int) string {
	table, ok := regTables[reg]
	if !ok {
		return reg
	}
	switch width {
	case 1:
		return table[0]
	case 2:
		return table[1]
	case 4:
		return table[2]
	default:
		return table[3]
	}
}

// regTables holds the {8-bit, 16-bit, 32-bit, 64-bit} spelling of every
// general-purpose register CTFAW ever names directly.
var regTables = map[string][4]string{
	"rax": {"al", "ax", "eax", "rax"},
	"rbx": {"bl", "bx", "ebx", "rbx"},
	"rcx": {"cl", "cx", "ecx", "rcx"},
	"rdx": {"dl", "dx", "edx", "rdx"},
	"rsi": {"sil", "si", "esi", "rsi"},
	"rdi": {"dil", "di", "edi", "rdi"},
	"r8":  {"r8b", "r8w", "r8d", "r8"},
	"r9":  {"r9b", "r9w", "r9d", "r9"},
	"r10": {"r10b", "r10w", "r10d", "r10"},
	"r11": {"r11b", "r11w", "r11d", "r11"},
	"r12": {"r12b", "r12w", "r12d", "r12"},
	"r13": {"r13b", "r13w", "r13d", "r13"},
	"r14": {"r14b", "r14w", "r14d", "r14"},
	"r15": {"r15b", "r15w", "r15d", "r15"},
}

// sizePrefix is the NASM memory-operand size directive for a type's width.
func sizePrefix(t types.Type) string {
	switch t.Size() {
	case 1:
		return "BYTE"
	case 2:
		return "WORD"
	case 4:
		return "DWORD"
	default:
		return "QWORD"
	}
}

// argRegs is the SysV AMD64 integer argument register order (spec §4.6).
var argRegs = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// loadFull loads a value of type t from mem into the full 64-bit dst
// register, zero/sign-extending narrower-than-4-byte types so dst never
// carries stale upper-bit garbage into a later cmp/shr/sar/div (those,
// unlike add/sub/mul/bitwise ops, are not pure functions of the low n
// bits of their operands). A 4-or-8-byte load already zero-extends the
// full register as a side effect of writing its 32-bit half, so those
// widths use a plain sized mov.
func (fg *funcGen) loadFull(dst string, t types.Type, mem string) {
	size := t.Size()
	switch {
	case size >= 4:
		fg.g.emit("mov %s, %s %s", sizedReg(dst, size), sizePrefix(t), mem)
	case t.IsSigned():
		fg.g.emit("movsx %s, %s %s", dst, sizePrefix(t), mem)
	default:
		fg.g.emit("movzx %s, %s %s", dst, sizePrefix(t), mem)
	}
}
