/*
File    : ctfaw/lexer/token.go

Package lexer turns CTFAW source text into a flat token stream. Grounded
on the teacher's lexer/token.go (TokenType enum + Token struct carrying
line/column), generalized so literals carry a typed payload (Lit) and
type-name keywords resolve directly to a types.Type rather than a bare
identifier string.
*/
package lexer

import (
	"fmt"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

// Kind is the tag of the Token tagged union (spec §3).
type Kind int

const (
	KindOp Kind = iota
	KindLparen
	KindRparen
	KindArrow
	KindLiteral
	KindTypeRef
	KindLet
	KindConst
	KindIf
	KindElse
	KindElseIf
	KindFn
	KindWhile
	KindReturn
	KindExtern
	KindComma
	KindColon
	KindLbrace
	KindRbrace
	KindEndln
	KindAssign
	KindEllipsis
	KindEOF
)

var kindNames = map[Kind]string{
	KindOp: "operator", KindLparen: "(", KindRparen: ")", KindArrow: "->",
	KindLiteral: "literal", KindTypeRef: "type", KindLet: "let", KindConst: "const",
	KindIf: "if", KindElse: "else", KindElseIf: "elseif", KindFn: "fn",
	KindWhile: "while", KindReturn: "return", KindExtern: "extern",
	KindComma: ",", KindColon: ":", KindLbrace: "{", KindRbrace: "}",
	KindEndln: ";", KindAssign: "=", KindEllipsis: "...", KindEOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

// LitKind tags the payload carried by a KindLiteral token.
type LitKind int

const (
	LitIdent LitKind = iota
	LitInt
	LitFloat
	LitChar
	LitBool
	LitString
)

// Lit is the literal payload of a token: exactly one field is meaningful,
// selected by Kind.
type Lit struct {
	Kind  LitKind
	Ident string
	Int   uint64
	Float float64
	Char  byte
	Bool  bool
	Str   string
}

// Token pairs a tagged value with its source location. Every token
// produced by the lexer carries a valid Pos (spec §3 invariant).
type Token struct {
	Kind Kind
	Op   types.Operation // meaningful when Kind == KindOp
	Type types.Type      // meaningful when Kind == KindTypeRef
	Lit  Lit             // meaningful when Kind == KindLiteral
	Pos  diag.Pos
}

func (t Token) String() string {
	switch t.Kind {
	case KindOp:
		return t.Op.String()
	case KindTypeRef:
		return t.Type.String()
	case KindLiteral:
		switch t.Lit.Kind {
		case LitIdent:
			return t.Lit.Ident
		case LitInt:
			return fmt.Sprintf("%d", t.Lit.Int)
		case LitFloat:
			return fmt.Sprintf("%g", t.Lit.Float)
		case LitChar:
			return fmt.Sprintf("%q", rune(t.Lit.Char))
		case LitBool:
			return fmt.Sprintf("%t", t.Lit.Bool)
		case LitString:
			return fmt.Sprintf("%q", t.Lit.Str)
		}
	}
	return t.Kind.String()
}

// keywords maps reserved words to their token kind. Type-name keywords
// (u8, bool, char, ...) are handled separately since they additionally
// carry a types.Type payload.
var keywords = map[string]Kind{
	"let":    KindLet,
	"const":  KindConst,
	"if":     KindIf,
	"else":   KindElse,
	"elseif": KindElseIf,
	"fn":     KindFn,
	"while":  KindWhile,
	"return": KindReturn,
	"extern": KindExtern,
}

// IsValue reports whether tok can terminate a value on its left, i.e.
// whether a following '&'/'*'/'!'/'~' should be read as a binary operator
// rather than a unary prefix.
func IsValue(tok Token) bool {
	switch tok.Kind {
	case KindLiteral, KindRparen:
		return true
	}
	return false
}
