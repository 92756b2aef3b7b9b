/*
File    : ctfaw/parser/parser_asm.go

Inline-assembly statement parsing (spec §4.3): `asm( STRING : io-list :
io-list : reg-list );`. This form has no analogue in the teacher, so it
is grounded directly on spec.md's grammar rather than adapted from an
existing teacher function.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/types"
)

// parseInlineAsm parses `asm ( STRING : io-list : io-list : reg-list ) ;`.
func (p *Parser) parseInlineAsm() (Stmt, error) {
	nameTok := p.advance() // "asm" identifier
	if _, err := p.expect(lexer.KindLparen); err != nil {
		return nil, err
	}
	body, err := p.expect(lexer.KindLiteral)
	if err != nil || body.Lit.Kind != lexer.LitString {
		return nil, p.rep.Report(diag.Parser, nameTok.Pos, "expected the asm body string")
	}
	if _, err := p.expect(lexer.KindColon); err != nil {
		return nil, err
	}
	inputs, err := p.parseRegBindList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindColon); err != nil {
		return nil, err
	}
	outputs, err := p.parseRegBindList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindColon); err != nil {
		return nil, err
	}
	clobbers, err := p.parseRegList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRparen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindEndln); err != nil {
		return nil, err
	}
	return &InlineAsm{
		Text:     body.Lit.Str,
		Inputs:   inputs,
		Outputs:  outputs,
		Clobbers: clobbers,
		P:        nameTok.Pos,
	}, nil
}

// parseRegBindList parses `[ STRING "|" IDENT { "," STRING "|" IDENT } ]`,
// the comma-separated "register | variable" pairs of an asm input/output
// list (the literal '|' is BitOr, per the original compiler's grammar).
func (p *Parser) parseRegBindList() ([]RegBind, error) {
	var binds []RegBind
	for p.cur().Kind != lexer.KindColon {
		reg, err := p.expect(lexer.KindLiteral)
		if err != nil || reg.Lit.Kind != lexer.LitString {
			return nil, p.rep.Report(diag.Parser, reg.Pos, "expected a register name string")
		}
		if p.cur().Kind != lexer.KindOp || p.cur().Op != types.BitOr {
			return nil, p.rep.Report(diag.Parser, p.cur().Pos, "expected '|' between register and variable name")
		}
		p.advance()
		name, err := p.expect(lexer.KindLiteral)
		if err != nil || name.Lit.Kind != lexer.LitIdent {
			return nil, p.rep.Report(diag.Parser, name.Pos, "expected a variable name")
		}
		binds = append(binds, RegBind{Reg: reg.Lit.Str, Name: name.Lit.Ident})
		if p.cur().Kind == lexer.KindComma {
			p.advance()
		}
	}
	return binds, nil
}

// parseRegList parses the comma-separated `reg-list` of clobbered
// registers: plain register-name string literals.
func (p *Parser) parseRegList() ([]string, error) {
	var regs []string
	for p.cur().Kind != lexer.KindRparen {
		reg, err := p.expect(lexer.KindLiteral)
		if err != nil || reg.Lit.Kind != lexer.LitString {
			return nil, p.rep.Report(diag.Parser, reg.Pos, "expected a register name string")
		}
		regs = append(regs, reg.Lit.Str)
		if p.cur().Kind == lexer.KindComma {
			p.advance()
		}
	}
	return regs, nil
}
