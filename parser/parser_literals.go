/*
File    : ctfaw/parser/parser_literals.go

Leaf-expression parsing (spec §4.2 leaf cases): a single-token slice
becomes the matching literal/identifier node. Boolean literals fold into
IntLit(0|1) here rather than carrying their own node kind, per spec.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/types"
)

func parseLeaf(tok lexer.Token, rep *diag.Reporter) (Expr, error) {
	if tok.Kind != lexer.KindLiteral {
		return nil, rep.Report(diag.Parser, tok.Pos, "unexpected token %s in expression", tok)
	}
	switch tok.Lit.Kind {
	case lexer.LitIdent:
		return &Ident{Name: tok.Lit.Ident, P: tok.Pos}, nil
	case lexer.LitInt:
		return &IntLit{Value: tok.Lit.Int, P: tok.Pos}, nil
	case lexer.LitFloat:
		return &FloatLit{Value: tok.Lit.Float, P: tok.Pos}, nil
	case lexer.LitChar:
		return &CharLit{Value: tok.Lit.Char, P: tok.Pos}, nil
	case lexer.LitBool:
		v := uint64(0)
		if tok.Lit.Bool {
			v = 1
		}
		return &IntLit{Value: v, P: tok.Pos}, nil
	case lexer.LitString:
		return &StrLit{Value: tok.Lit.Str, P: tok.Pos}, nil
	}
	return nil, rep.Report(diag.Parser, tok.Pos, "unexpected token %s in expression", tok)
}

// parseTypeTok extracts the types.Type payload of a single type-ref
// token, reporting a diagnostic for any other token kind. The lexer
// already folds pointer-depth `*` suffixes onto the type keyword itself.
// The declaration parsers (let/const/param/extern/fn return type) do not
// call it; they read the Type of the token returned by expect directly.
func parseTypeTok(tok lexer.Token, rep *diag.Reporter) (types.Type, error) {
	if tok.Kind != lexer.KindTypeRef {
		return types.Type{}, rep.Report(diag.Parser, tok.Pos, "expected a type name, found %s", tok)
	}
	return tok.Type, nil
}
