/*
File    : ctfaw/parser/parser_statements.go

The statement parser (spec §4.3): a cursor over the full token stream,
dispatching on the first one or two tokens of each statement. Grounded
on the teacher's parser_statements.go dispatch-by-leading-token shape,
adapted from a var/let/const-evaluating interpreter statement to
CTFAW's compile-time Define/Assign/Return/If/While/Extern/InlineAsm set.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/types"
)

// Parser walks a flat token stream with a single cursor, used by both
// the statement parser and the top-level parser (spec §4.3, §4.3
// top-level). Expression parsing itself is handed off to the slice-based
// ParseExpr once the statement parser has located an expression's
// token range.
type Parser struct {
	toks []lexer.Token
	pos  int
	rep  *diag.Reporter
}

// New creates a Parser over the full token stream produced by the lexer.
func New(toks []lexer.Token, rep *diag.Reporter) *Parser {
	return &Parser{toks: toks, rep: rep}
}

func (p *Parser) atEnd() bool       { return p.pos >= len(p.toks) }
func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

// peek looks ahead n tokens from the cursor (peek(0) == cur()), returning
// a synthetic EOF token past the end of the stream.
func (p *Parser) peek(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.toks[i]
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	if p.atEnd() || p.cur().Kind != kind {
		pos := diag.Pos{}
		if !p.atEnd() {
			pos = p.cur().Pos
		}
		return lexer.Token{}, p.rep.Report(diag.Parser, pos, "expected %s", kind)
	}
	return p.advance(), nil
}

// sliceUntil collects tokens from the cursor up to (not including) the
// first occurrence of stop at the current paren/brace depth, advancing
// the cursor past the stop token. Used to carve an expression's token
// range out of the surrounding statement.
func (p *Parser) sliceUntil(stop lexer.Kind) ([]lexer.Token, error) {
	start := p.pos
	depth := 0
	for !p.atEnd() {
		if depth == 0 && p.cur().Kind == stop {
			toks := p.toks[start:p.pos]
			p.advance()
			return toks, nil
		}
		switch p.cur().Kind {
		case lexer.KindLparen:
			depth++
		case lexer.KindRparen:
			depth--
		}
		p.advance()
	}
	return nil, p.rep.Report(diag.Parser, diag.Pos{}, "expected %s before end of input", stop)
}

// ParseStatements parses statements from the cursor until it reaches end
// or a closing brace belonging to the caller (the caller has already
// consumed the opening brace and will consume the closing one).
func (p *Parser) ParseStatements() ([]Stmt, error) {
	var stmts []Stmt
	for !p.atEnd() && p.cur().Kind != lexer.KindRbrace {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.KindLet, lexer.KindConst:
		return p.parseDefine()
	case lexer.KindReturn:
		return p.parseReturn()
	case lexer.KindIf:
		return p.parseIf()
	case lexer.KindWhile:
		return p.parseWhile()
	case lexer.KindExtern:
		return p.parseExtern()
	case lexer.KindOp:
		if tok.Op == types.Mul {
			return p.parseDerefAssign()
		}
	case lexer.KindLiteral:
		if tok.Lit.Kind == lexer.LitIdent {
			if tok.Lit.Ident == "asm" && p.peek(1).Kind == lexer.KindLparen {
				return p.parseInlineAsm()
			}
			if p.peek(1).Kind == lexer.KindLparen {
				return p.parseCallStatement()
			}
			if p.peek(1).Kind == lexer.KindAssign {
				return p.parseAssign()
			}
		}
	}
	return nil, p.rep.Report(diag.Parser, tok.Pos, "unexpected token %s at start of statement", tok)
}

// parseDefine parses `let`/`const NAME : TYPE = EXPR ;` (spec §4.3).
func (p *Parser) parseDefine() (Stmt, error) {
	kw := p.advance()
	isConst := kw.Kind == lexer.KindConst

	name, err := p.expect(lexer.KindLiteral)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindColon); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(lexer.KindTypeRef)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindAssign); err != nil {
		return nil, err
	}
	exprToks, err := p.sliceUntil(lexer.KindEndln)
	if err != nil {
		return nil, err
	}
	expr, err := ParseExpr(exprToks, p.rep)
	if err != nil {
		return nil, err
	}
	return &Define{
		IsConst:      isConst,
		Name:         name.Lit.Ident,
		DeclaredType: typeTok.Type,
		Expr:         expr,
		P:            kw.Pos,
	}, nil
}

// parseAssign parses `NAME = EXPR ;`.
func (p *Parser) parseAssign() (Stmt, error) {
	name := p.advance()
	if _, err := p.expect(lexer.KindAssign); err != nil {
		return nil, err
	}
	exprToks, err := p.sliceUntil(lexer.KindEndln)
	if err != nil {
		return nil, err
	}
	expr, err := ParseExpr(exprToks, p.rep)
	if err != nil {
		return nil, err
	}
	return &Assign{Name: name.Lit.Ident, Expr: expr, P: name.Pos}, nil
}

// parseDerefAssign parses `* IDENT = EXPR ;`.
func (p *Parser) parseDerefAssign() (Stmt, error) {
	star := p.advance()
	name, err := p.expect(lexer.KindLiteral)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindAssign); err != nil {
		return nil, err
	}
	exprToks, err := p.sliceUntil(lexer.KindEndln)
	if err != nil {
		return nil, err
	}
	expr, err := ParseExpr(exprToks, p.rep)
	if err != nil {
		return nil, err
	}
	return &Assign{Deref: true, Name: name.Lit.Ident, Expr: expr, P: star.Pos}, nil
}

// parseReturn parses `return EXPR ;`.
func (p *Parser) parseReturn() (Stmt, error) {
	kw := p.advance()
	exprToks, err := p.sliceUntil(lexer.KindEndln)
	if err != nil {
		return nil, err
	}
	expr, err := ParseExpr(exprToks, p.rep)
	if err != nil {
		return nil, err
	}
	return &Return{Value: expr, P: kw.Pos}, nil
}

// parseCallStatement parses a bare call used as a statement: `NAME ( ARGS ) ;`.
func (p *Parser) parseCallStatement() (Stmt, error) {
	start := p.pos
	callToks, err := p.sliceUntil(lexer.KindEndln)
	if err != nil {
		return nil, err
	}
	expr, err := ParseExpr(callToks, p.rep)
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*FuncCall)
	if !ok {
		return nil, p.rep.Report(diag.Parser, p.toks[start].Pos, "expected a function call statement")
	}
	return &CallStmt{Call: call, P: call.P}, nil
}

func (p *Parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(lexer.KindLbrace); err != nil {
		return nil, err
	}
	stmts, err := p.ParseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRbrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseIf parses `if ( COND ) { BODY }`.
func (p *Parser) parseIf() (Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(lexer.KindLparen); err != nil {
		return nil, err
	}
	condToks, err := p.sliceUntil(lexer.KindRparen)
	if err != nil {
		return nil, err
	}
	cond, err := ParseExpr(condToks, p.rep)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &If{Cond: cond, Body: body, P: kw.Pos}, nil
}

// parseWhile parses `while ( COND ) { BODY }`.
func (p *Parser) parseWhile() (Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(lexer.KindLparen); err != nil {
		return nil, err
	}
	condToks, err := p.sliceUntil(lexer.KindRparen)
	if err != nil {
		return nil, err
	}
	cond, err := ParseExpr(condToks, p.rep)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body, P: kw.Pos}, nil
}

// parseExtern parses `extern NAME ( TYPE, TYPE, ... ) -> TYPE ;`
// (SPEC_FULL supplemented feature 1).
func (p *Parser) parseExtern() (Stmt, error) {
	kw := p.advance()
	name, err := p.expect(lexer.KindLiteral)
	if err != nil {
		return nil, err
	}
	sig, err := p.parseExternSig()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindEndln); err != nil {
		return nil, err
	}
	return &Extern{Name: name.Lit.Ident, Sig: sig, P: kw.Pos}, nil
}

func (p *Parser) parseExternSig() (FuncSig, error) {
	if _, err := p.expect(lexer.KindLparen); err != nil {
		return FuncSig{}, err
	}
	var sig FuncSig
	for p.cur().Kind != lexer.KindRparen {
		if p.cur().Kind == lexer.KindEllipsis {
			p.advance()
			sig.IsVariadic = true
			sig.VarargsIdx = len(sig.Params)
			break
		}
		typeTok, err := p.expect(lexer.KindTypeRef)
		if err != nil {
			return FuncSig{}, err
		}
		sig.Params = append(sig.Params, Param{Type: typeTok.Type})
		if p.cur().Kind == lexer.KindComma {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.KindRparen); err != nil {
		return FuncSig{}, err
	}
	sig.RetType = types.Type{Base: types.U32}
	if p.cur().Kind == lexer.KindArrow {
		p.advance()
		retTok, err := p.expect(lexer.KindTypeRef)
		if err != nil {
			return FuncSig{}, err
		}
		sig.RetType = retTok.Type
	}
	return sig, nil
}
