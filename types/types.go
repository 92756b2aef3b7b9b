/*
File    : ctfaw/types/types.go

Package types defines the two closed lattices shared across every later
compiler stage: the operator set (Operation) and the type system
(Base + pointer depth). Grounded on the teacher's eval/types.go, which
keeps a single flat GoMixType string tag per runtime object; CTFAW
generalizes that into a (base, pointer-depth) pair since pointers need
their own arithmetic at type-check and codegen time.
*/
package types

import "strings"

// Base is the scalar part of a Type. Any is an internal placeholder
// produced by integer literals and unresolved identifiers; it is never
// directly authorable by the user (spec §3).
type Base int

const (
	Any Base = iota
	Char
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F64
	Bool
)

var baseNames = map[Base]string{
	Any:  "any",
	Char: "char",
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	F64:  "f64",
	Bool: "bool",
}

// BaseByName looks up a Base from the keyword spelling used in source
// (e.g. "u32", "bool", "char"). It never returns Any — Any has no surface
// spelling.
var BaseByName = map[string]Base{
	"char": Char,
	"u8":   U8,
	"u16":  U16,
	"u32":  U32,
	"u64":  U64,
	"i8":   I8,
	"i16":  I16,
	"i32":  I32,
	"i64":  I64,
	"f64":  F64,
	"bool": Bool,
}

func (b Base) String() string {
	if s, ok := baseNames[b]; ok {
		return s
	}
	return "?"
}

// Type is a scalar base plus a pointer depth; PtrDepth == 0 means a plain
// value of Base, PtrDepth == 1 means a pointer to one, and so on.
type Type struct {
	Base     Base
	PtrDepth int
}

// Equal reports whether two types are identical: same base, same pointer
// depth. Any-unification is handled separately by Unify.
func (t Type) Equal(other Type) bool {
	return t.Base == other.Base && t.PtrDepth == other.PtrDepth
}

// IsAny reports whether t is the bare, unresolved-integer-literal type.
func (t Type) IsAny() bool {
	return t.Base == Any && t.PtrDepth == 0
}

// IsPointer reports whether t has at least one level of indirection.
func (t Type) IsPointer() bool {
	return t.PtrDepth > 0
}

// IsFloat reports whether t is the (non-pointer) floating-point type.
func (t Type) IsFloat() bool {
	return t.Base == F64 && t.PtrDepth == 0
}

// IsInteger reports whether t denotes an integer-valued scalar: any
// integer Base at pointer depth 0, or Any (unresolved literal), or a
// pointer (pointers behave like unsigned integers in arithmetic/codegen).
func (t Type) IsInteger() bool {
	if t.PtrDepth > 0 {
		return true
	}
	switch t.Base {
	case Any, Char, U8, U16, U32, U64, I8, I16, I32, I64, Bool:
		return true
	}
	return false
}

// IsSigned reports whether arithmetic on t should use signed instructions
// (idiv/imul, signed set-cc). Pointers and unsigned bases are unsigned.
func (t Type) IsSigned() bool {
	if t.PtrDepth > 0 {
		return false
	}
	switch t.Base {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

// Size returns the width in bytes used to select a register/memory-operand
// size during code generation. Pointers are always 8 bytes regardless of
// pointee size, since CTFAW does not lay out pointee-sized slots for
// pointer variables themselves.
func (t Type) Size() int {
	if t.PtrDepth > 0 {
		return 8
	}
	switch t.Base {
	case Char, U8, I8, Bool:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case U64, I64, F64, Any:
		return 8
	}
	return 8
}

// String renders a type the way it would be written in source: base name
// followed by one '*' per pointer level, e.g. "u8**".
func (t Type) String() string {
	var b strings.Builder
	b.WriteString(t.Base.String())
	b.WriteString(strings.Repeat("*", t.PtrDepth))
	return b.String()
}

// Deref returns the type one pointer level down, and false if t is not a
// pointer (the caller is expected to report a diagnostic in that case).
func (t Type) Deref() (Type, bool) {
	if t.PtrDepth <= 0 {
		return Type{}, false
	}
	return Type{Base: t.Base, PtrDepth: t.PtrDepth - 1}, true
}

// Ref returns the type one pointer level up (the type of &x where x has
// type t).
func (t Type) Ref() Type {
	return Type{Base: t.Base, PtrDepth: t.PtrDepth + 1}
}

// Unify implements the type checker's permissive Any rule (spec §3): two
// equal types unify to themselves; if exactly one side is Any, the
// concrete side wins; if both are Any, Any is returned; otherwise the
// types are incompatible.
func Unify(a, b Type) (Type, bool) {
	if a.Equal(b) {
		return a, true
	}
	if a.IsAny() {
		return b, true
	}
	if b.IsAny() {
		return a, true
	}
	return Type{}, false
}

// Operation is the closed set of binary/unary operators (spec §3).
type Operation int

const (
	Add Operation = iota
	Sub
	Mul // Star
	Div
	Mod
	Pow
	As // cast
	BitAnd
	BitOr
	BitXor
	BitNot
	LShift
	RShift
	LogAnd
	LogOr
	LogNot
	Eq
	NotEq
	Less
	LessEq
	Greater
	GreaterEq
)

var opNames = map[Operation]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "**", As: "as",
	BitAnd: "&", BitOr: "|", BitXor: "^", BitNot: "~",
	LShift: "<<", RShift: ">>",
	LogAnd: "&&", LogOr: "||", LogNot: "!",
	Eq: "==", NotEq: "!=", Less: "<", LessEq: "<=", Greater: ">", GreaterEq: ">=",
}

func (o Operation) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "?"
}

// IsComparison reports whether o is one of the six comparison operators,
// which always type-check to Bool regardless of operand type.
func (o Operation) IsComparison() bool {
	switch o {
	case Eq, NotEq, Less, LessEq, Greater, GreaterEq:
		return true
	}
	return false
}

// IsLogical reports whether o is a logical boolean operator (&&, ||).
// Code generation evaluates both operands; there is no short-circuit.
func (o Operation) IsLogical() bool {
	return o == LogAnd || o == LogOr
}
