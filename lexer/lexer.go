/*
File    : ctfaw/lexer/lexer.go

Package lexer scans CTFAW source text into tokens, one logical token per
NextToken call. Grounded on the teacher's lexer/lexer.go: a byte-at-a-time
scanner carrying Current/Position/Line/Column, with Peek/Advance helpers
and a switch over the current byte in NextToken. Unlike the teacher (which
builds fmt.Errorf values it never returns), lexical errors are routed
through diag.Reporter and actually propagate.
*/
package lexer

import (
	"strconv"
	"strings"

	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/types"
)

// Lexer scans CTFAW source text byte by byte, tracking 1-indexed row and
// column for diagnostics.
type Lexer struct {
	Src       string
	Current   byte
	Position  int
	SrcLength int
	Row       int
	Col       int

	reporter *diag.Reporter
}

// New creates a Lexer over src, reporting lexical errors through rep.
func New(src string, rep *diag.Reporter) *Lexer {
	current := byte(0)
	if len(src) > 0 {
		current = src[0]
	}
	return &Lexer{
		Src:       src,
		Current:   current,
		Position:  0,
		SrcLength: len(src),
		Row:       1,
		Col:       1,
		reporter:  rep,
	}
}

func (l *Lexer) pos() diag.Pos { return diag.Pos{Row: l.Row, Col: l.Col} }

// Peek looks at the next byte without consuming it, or 0 at end of source.
func (l *Lexer) Peek() byte {
	if l.Position+1 >= l.SrcLength {
		return 0
	}
	return l.Src[l.Position+1]
}

// Advance consumes the current byte and moves to the next one.
func (l *Lexer) Advance() {
	l.Position++
	l.Col++
	if l.Position >= l.SrcLength {
		l.Current = 0
		l.Position = l.SrcLength
	} else {
		l.Current = l.Src[l.Position]
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(l.Current):
			newline := l.Current == '\n'
			l.Advance()
			if newline {
				l.Row++
				l.Col = 1
			}
		case l.Current == '/' && l.Peek() == '/':
			for l.Current != '\n' && l.Current != 0 {
				l.Advance()
			}
		default:
			return
		}
	}
}

// two tries a two-character operator starting at the current byte; if the
// next byte matches second it consumes both and returns ok=true.
func (l *Lexer) two(second byte) bool {
	if l.Peek() == second {
		l.Advance()
		return true
	}
	return false
}

func op(pos diag.Pos, o types.Operation) Token {
	return Token{Kind: KindOp, Op: o, Pos: pos}
}

// Tokenize scans the entire source and returns its token stream, or the
// first lexical error encountered (spec §7: first fatal diagnostic
// halts the stage).
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// NextToken scans and returns the next token, or a diagnostic error.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()
	startPos := l.pos()

	c := l.Current
	switch {
	case c == 0:
		return Token{Kind: KindEOF, Pos: startPos}, nil
	case c == '(':
		l.Advance()
		return Token{Kind: KindLparen, Pos: startPos}, nil
	case c == ')':
		l.Advance()
		return Token{Kind: KindRparen, Pos: startPos}, nil
	case c == '{':
		l.Advance()
		return Token{Kind: KindLbrace, Pos: startPos}, nil
	case c == '}':
		l.Advance()
		return Token{Kind: KindRbrace, Pos: startPos}, nil
	case c == ',':
		l.Advance()
		return Token{Kind: KindComma, Pos: startPos}, nil
	case c == ':':
		l.Advance()
		return Token{Kind: KindColon, Pos: startPos}, nil
	case c == ';':
		l.Advance()
		return Token{Kind: KindEndln, Pos: startPos}, nil
	case c == '-':
		if l.two('>') {
			l.Advance()
			return Token{Kind: KindArrow, Pos: startPos}, nil
		}
		l.Advance()
		return op(startPos, types.Sub), nil
	case c == '+':
		l.Advance()
		return op(startPos, types.Add), nil
	case c == '*':
		if l.two('*') {
			l.Advance()
			return op(startPos, types.Pow), nil
		}
		l.Advance()
		return op(startPos, types.Mul), nil
	case c == '/':
		// "//" is a line comment, already consumed by skipWhitespaceAndComments;
		// reaching here with a lone '/' means division.
		l.Advance()
		return op(startPos, types.Div), nil
	case c == '%':
		l.Advance()
		return op(startPos, types.Mod), nil
	case c == '&':
		if l.two('&') {
			l.Advance()
			return op(startPos, types.LogAnd), nil
		}
		l.Advance()
		return op(startPos, types.BitAnd), nil
	case c == '|':
		if l.two('|') {
			l.Advance()
			return op(startPos, types.LogOr), nil
		}
		l.Advance()
		return op(startPos, types.BitOr), nil
	case c == '^':
		l.Advance()
		return op(startPos, types.BitXor), nil
	case c == '~':
		l.Advance()
		return op(startPos, types.BitNot), nil
	case c == '!':
		if l.two('=') {
			l.Advance()
			return op(startPos, types.NotEq), nil
		}
		l.Advance()
		return op(startPos, types.LogNot), nil
	case c == '=':
		if l.two('=') {
			l.Advance()
			return op(startPos, types.Eq), nil
		}
		l.Advance()
		return Token{Kind: KindAssign, Pos: startPos}, nil
	case c == '<':
		if l.two('<') {
			l.Advance()
			return op(startPos, types.LShift), nil
		}
		if l.two('=') {
			l.Advance()
			return op(startPos, types.LessEq), nil
		}
		l.Advance()
		return op(startPos, types.Less), nil
	case c == '>':
		if l.two('>') {
			l.Advance()
			return op(startPos, types.RShift), nil
		}
		if l.two('=') {
			l.Advance()
			return op(startPos, types.GreaterEq), nil
		}
		l.Advance()
		return op(startPos, types.Greater), nil
	case c == '.':
		if l.two('.') {
			l.Advance()
			if l.two('.') {
				l.Advance()
				return Token{Kind: KindEllipsis, Pos: startPos}, nil
			}
		}
		return Token{}, l.reporter.Report(diag.Lexer, startPos, "unrecognized byte %q", c)
	case c == '"':
		return l.readString(startPos)
	case c == '\'':
		return l.readChar(startPos)
	case isDigit(c):
		return l.readNumber(startPos), nil
	case isAlpha(c) || c == '_':
		return l.readIdentOrKeyword(startPos), nil
	default:
		return Token{}, l.reporter.Report(diag.Lexer, startPos, "unrecognized byte %q", c)
	}
}

// readNumber scans greedy digits, optionally containing one '.', which
// upgrades the literal to Float (spec §4.1).
func (l *Lexer) readNumber(startPos diag.Pos) Token {
	start := l.Position
	for isDigit(l.Current) {
		l.Advance()
	}
	isFloat := false
	if l.Current == '.' && isDigit(l.Peek()) {
		isFloat = true
		l.Advance()
		for isDigit(l.Current) {
			l.Advance()
		}
	}
	text := l.Src[start:l.Position]
	if isFloat {
		f, _ := strconv.ParseFloat(text, 64)
		return Token{Kind: KindLiteral, Lit: Lit{Kind: LitFloat, Float: f}, Pos: startPos}
	}
	n, _ := strconv.ParseUint(text, 10, 64)
	return Token{Kind: KindLiteral, Lit: Lit{Kind: LitInt, Int: n}, Pos: startPos}
}

func (l *Lexer) readIdentOrKeyword(startPos diag.Pos) Token {
	start := l.Position
	for isAlnum(l.Current) {
		l.Advance()
	}
	text := l.Src[start:l.Position]

	switch text {
	case "true", "false":
		return Token{Kind: KindLiteral, Lit: Lit{Kind: LitBool, Bool: text == "true"}, Pos: startPos}
	case "as":
		return op(startPos, types.As)
	}
	if base, ok := types.BaseByName[text]; ok {
		ptrDepth := 0
		for l.Current == '*' {
			ptrDepth++
			l.Advance()
		}
		return Token{Kind: KindTypeRef, Type: types.Type{Base: base, PtrDepth: ptrDepth}, Pos: startPos}
	}
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Pos: startPos}
	}
	return Token{Kind: KindLiteral, Lit: Lit{Kind: LitIdent, Ident: text}, Pos: startPos}
}

func (l *Lexer) readString(startPos diag.Pos) (Token, error) {
	l.Advance() // consume opening quote
	var b strings.Builder
	for l.Current != '"' {
		if l.Current == 0 {
			return Token{}, l.reporter.Report(diag.Lexer, startPos, "unterminated string literal")
		}
		if l.Current == '\\' {
			l.Advance()
			esc, ok := escapeByte(l.Current)
			if !ok {
				return Token{}, l.reporter.Report(diag.Lexer, l.pos(), "unknown escape sequence \\%c", l.Current)
			}
			b.WriteByte(esc)
			l.Advance()
			continue
		}
		b.WriteByte(l.Current)
		l.Advance()
	}
	l.Advance() // consume closing quote
	return Token{Kind: KindLiteral, Lit: Lit{Kind: LitString, Str: b.String()}, Pos: startPos}, nil
}

func (l *Lexer) readChar(startPos diag.Pos) (Token, error) {
	l.Advance() // consume opening quote
	var ch byte
	if l.Current == '\\' {
		l.Advance()
		esc, ok := escapeByte(l.Current)
		if !ok {
			return Token{}, l.reporter.Report(diag.Lexer, l.pos(), "unknown escape sequence \\%c", l.Current)
		}
		ch = esc
		l.Advance()
	} else if l.Current == 0 || l.Current == '\'' {
		return Token{}, l.reporter.Report(diag.Lexer, startPos, "unterminated char literal")
	} else {
		ch = l.Current
		l.Advance()
	}
	if l.Current != '\'' {
		return Token{}, l.reporter.Report(diag.Lexer, l.pos(), "unterminated char literal")
	}
	l.Advance() // consume closing quote
	return Token{Kind: KindLiteral, Lit: Lit{Kind: LitChar, Char: ch}, Pos: startPos}, nil
}

