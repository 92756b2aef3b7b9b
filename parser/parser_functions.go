/*
File    : ctfaw/parser/parser_functions.go

The top-level parser (spec §4.3 "Top-level Parser"): iterates over the
full token stream producing a function table plus a global-constants
list. Grounded on the teacher's parser_functions.go named-function
dispatch, adapted from an interpreter's callable-value table to a
compile-time FuncTableVal map.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/types"
)

// ParseProgram parses the full token stream into a Program: every `fn`
// declaration and every top-level `const` (spec §4.3). A top-level
// `let` is a parse-time error (spec §4.3, §7).
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{Funcs: map[string]*FuncTableVal{}}
	for !p.atEnd() {
		switch p.cur().Kind {
		case lexer.KindFn:
			name, fn, err := p.parseFuncDecl()
			if err != nil {
				return nil, err
			}
			if _, dup := prog.Funcs[name]; dup {
				return nil, p.rep.Report(diag.Parser, fn.pos, "function %q redeclared", name)
			}
			prog.Funcs[name] = fn.val
			prog.FuncOrder = append(prog.FuncOrder, name)
		case lexer.KindConst:
			g, err := p.parseGlobalConst()
			if err != nil {
				return nil, err
			}
			prog.Globals = append(prog.Globals, g)
		case lexer.KindExtern:
			stmt, err := p.parseExtern()
			if err != nil {
				return nil, err
			}
			ext := stmt.(*Extern)
			if _, dup := prog.Funcs[ext.Name]; dup {
				return nil, p.rep.Report(diag.Parser, ext.P, "function %q redeclared", ext.Name)
			}
			prog.Funcs[ext.Name] = &FuncTableVal{Sig: ext.Sig}
			prog.FuncOrder = append(prog.FuncOrder, ext.Name)
		case lexer.KindLet:
			return nil, p.rep.Report(diag.Parser, p.cur().Pos, "'let' is not allowed at top level; use 'const'")
		default:
			return nil, p.rep.Report(diag.Parser, p.cur().Pos, "unexpected token %s at top level", p.cur())
		}
	}
	return prog, nil
}

type funcDecl struct {
	pos diag.Pos
	val *FuncTableVal
}

// parseFuncDecl parses `fn NAME ( ARGS ) ( -> TYPE )? { BODY }`.
func (p *Parser) parseFuncDecl() (string, funcDecl, error) {
	kw := p.advance()
	nameTok, err := p.expect(lexer.KindLiteral)
	if err != nil {
		return "", funcDecl{}, err
	}
	params, err := p.parseParams()
	if err != nil {
		return "", funcDecl{}, err
	}
	retType := types.Type{Base: types.U32}
	if p.cur().Kind == lexer.KindArrow {
		p.advance()
		retTok, err := p.expect(lexer.KindTypeRef)
		if err != nil {
			return "", funcDecl{}, err
		}
		retType = retTok.Type
	}
	body, err := p.parseBlock()
	if err != nil {
		return "", funcDecl{}, err
	}
	sig := FuncSig{Params: params, RetType: retType}
	return nameTok.Lit.Ident, funcDecl{pos: kw.Pos, val: &FuncTableVal{Sig: sig, Body: body}}, nil
}

// parseParams parses `( [ NAME : TYPE { , NAME : TYPE } ] )`.
func (p *Parser) parseParams() ([]Param, error) {
	if _, err := p.expect(lexer.KindLparen); err != nil {
		return nil, err
	}
	var params []Param
	for p.cur().Kind != lexer.KindRparen {
		nameTok, err := p.expect(lexer.KindLiteral)
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
		params = append(params, Param{Name: nameTok.Lit.Ident, Type: typeTok.Type})
		if p.cur().Kind == lexer.KindComma {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.KindRparen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseGlobalConst parses a top-level `const NAME : TYPE = EXPR ;`. The
// initializer must reduce to a single integer literal (spec §4.3, §4.4);
// this is checked here with a small self-contained evaluator rather than
// through the optimize package's general Fold, since that package
// consumes parser's node types and the parser cannot import it back
// without a dependency cycle — the driver runs the full optimizer pass
// over the parsed Program afterward (see optimize.FoldProgram).
func (p *Parser) parseGlobalConst() (GlobalVar, error) {
	kw := p.advance()
	nameTok, err := p.expect(lexer.KindLiteral)
	if err != nil {
		return GlobalVar{}, err
	}
	if _, err := p.expect(lexer.KindColon); err != nil {
		return GlobalVar{}, err
	}
	typeTok, err := p.expect(lexer.KindTypeRef)
	if err != nil {
		return GlobalVar{}, err
	}
	if _, err := p.expect(lexer.KindAssign); err != nil {
		return GlobalVar{}, err
	}
	exprToks, err := p.sliceUntil(lexer.KindEndln)
	if err != nil {
		return GlobalVar{}, err
	}
	expr, err := ParseExpr(exprToks, p.rep)
	if err != nil {
		return GlobalVar{}, err
	}
	value, ok := evalConstInt(expr)
	if !ok {
		return GlobalVar{}, p.rep.Report(diag.Parser, kw.Pos, "global initializer for %q is not a constant integer expression", nameTok.Lit.Ident)
	}
	return GlobalVar{Name: nameTok.Lit.Ident, Type: typeTok.Type, Value: value, P: kw.Pos}, nil
}

// evalConstInt evaluates expr as a constant integer, the narrow
// special case the top-level parser needs to validate a global
// initializer (spec §4.3, §4.4: Add/Sub/Mul/Div over Int literals only).
func evalConstInt(expr Expr) (uint64, bool) {
	switch e := expr.(type) {
	case *IntLit:
		return e.Value, true
	case *Binary:
		left, ok := evalConstInt(e.Left)
		if !ok {
			return 0, false
		}
		right, ok := evalConstInt(e.Right)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case types.Add:
			return left + right, true
		case types.Sub:
			return left - right, true
		case types.Mul:
			return left * right, true
		case types.Div:
			if right == 0 {
				return 0, false
			}
			return left / right, true
		}
	}
	return 0, false
}
