/*
File    : ctfaw/parser/parser_expressions.go

The expression parser (spec §4.2): a token slice known to be an
expression goes in, an Expr tree comes out. Implements the "rightmost
top-level operator" algorithm — scan left to right at paren depth 0,
track the loosest-binding operator seen, split there, and recurse on
both sides. Grounded on the teacher's parser_expressions.go dispatcher
shape (one function per node kind, called from a central entry point),
generalized from Pratt climbing to the slice-splitting form the
original source's ast.rs actually implements.
*/
package parser

import (
	"github.com/unmappedstack/ctfaw/diag"
	"github.com/unmappedstack/ctfaw/lexer"
	"github.com/unmappedstack/ctfaw/types"
)

// ParseExpr parses toks, a contiguous slice known to represent exactly
// one expression, into an Expr tree.
func ParseExpr(toks []lexer.Token, rep *diag.Reporter) (Expr, error) {
	if len(toks) == 0 {
		return nil, rep.Report(diag.Parser, diag.Pos{}, "expected an expression, found nothing")
	}
	if len(toks) == 1 {
		return parseLeaf(toks[0], rep)
	}
	if call, ok, err := tryParseCall(toks, rep); ok {
		return call, err
	}

	idx, found := findSplit(toks)
	if found {
		if toks[idx].Op == types.As {
			return parseCast(toks[:idx], toks[idx+1:], rep)
		}
		left, err := ParseExpr(toks[:idx], rep)
		if err != nil {
			return nil, err
		}
		right, err := ParseExpr(toks[idx+1:], rep)
		if err != nil {
			return nil, err
		}
		return &Binary{Left: left, Op: toks[idx].Op, Right: right, P: toks[idx].Pos}, nil
	}

	if toks[0].Kind == lexer.KindLparen {
		close := matchingClose(toks, 0, lexer.KindLparen, lexer.KindRparen)
		if close == len(toks)-1 {
			return ParseExpr(toks[1:len(toks)-1], rep)
		}
	}

	if toks[0].Kind == lexer.KindOp && unarySkippable(toks[0].Op) {
		return parseUnaryPrefix(toks, rep)
	}

	return nil, rep.Report(diag.Parser, toks[0].Pos, "unexpected token %s in expression", toks[0])
}

// findSplit scans toks for the operator with the loosest binding at
// paren depth 0, skipping & * ! ~ tokens that sit in unary position
// (spec §4.2 steps 2-3). Ties favor the rightmost occurrence, which
// yields a left-associative parse.
func findSplit(toks []lexer.Token) (int, bool) {
	depth := 0
	best := -1
	bestPrec := -1
	for i, t := range toks {
		switch t.Kind {
		case lexer.KindLparen:
			depth++
			continue
		case lexer.KindRparen:
			depth--
			continue
		}
		if depth != 0 || t.Kind != lexer.KindOp {
			continue
		}
		if unarySkippable(t.Op) && (i == 0 || !lexer.IsValue(toks[i-1])) {
			continue
		}
		prec := precedence(t.Op)
		if prec == 0 {
			continue
		}
		if prec >= bestPrec {
			bestPrec = prec
			best = i
		}
	}
	return best, best >= 0
}

// parseUnaryPrefix handles the three unary-prefix shapes: &x (Ref, spec
// requires a single trailing identifier), *e (Deref) and !e/~e (Unary).
func parseUnaryPrefix(toks []lexer.Token, rep *diag.Reporter) (Expr, error) {
	head := toks[0]
	rest := toks[1:]
	switch head.Op {
	case types.BitAnd:
		if len(rest) != 1 || rest[0].Kind != lexer.KindLiteral || rest[0].Lit.Kind != lexer.LitIdent {
			return nil, rep.Report(diag.Parser, head.Pos, "'&' must be followed by a single variable name")
		}
		return &Ref{Name: rest[0].Lit.Ident, P: head.Pos}, nil
	case types.Mul:
		operand, err := ParseExpr(rest, rep)
		if err != nil {
			return nil, err
		}
		return &Deref{Operand: operand, P: head.Pos}, nil
	case types.LogNot, types.BitNot:
		operand, err := ParseExpr(rest, rep)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: head.Op, Operand: operand, P: head.Pos}, nil
	}
	return nil, rep.Report(diag.Parser, head.Pos, "unexpected token %s in expression", head)
}

// parseCast builds a Cast node: leftToks is the value being cast,
// rightToks must be exactly the single type-ref token named by `as`.
func parseCast(leftToks, rightToks []lexer.Token, rep *diag.Reporter) (Expr, error) {
	value, err := ParseExpr(leftToks, rep)
	if err != nil {
		return nil, err
	}
	if len(rightToks) != 1 || rightToks[0].Kind != lexer.KindTypeRef {
		pos := diag.Pos{}
		if len(rightToks) > 0 {
			pos = rightToks[0].Pos
		}
		return nil, rep.Report(diag.Parser, pos, "expected a type name after 'as'")
	}
	return &Cast{Value: value, Target: rightToks[0].Type, P: rightToks[0].Pos}, nil
}

// tryParseCall recognizes `IDENT ( ARGS )` spanning the whole slice. ok
// is false when toks doesn't have this shape, in which case the caller
// falls back to the normal split algorithm.
func tryParseCall(toks []lexer.Token, rep *diag.Reporter) (Expr, bool, error) {
	if len(toks) < 3 {
		return nil, false, nil
	}
	if toks[0].Kind != lexer.KindLiteral || toks[0].Lit.Kind != lexer.LitIdent {
		return nil, false, nil
	}
	if toks[1].Kind != lexer.KindLparen {
		return nil, false, nil
	}
	close := matchingClose(toks, 1, lexer.KindLparen, lexer.KindRparen)
	if close != len(toks)-1 {
		return nil, false, nil
	}
	inner := toks[2:close]
	var args []Expr
	for _, argToks := range splitTopLevelCommas(inner) {
		if len(argToks) == 0 {
			continue
		}
		arg, err := ParseExpr(argToks, rep)
		if err != nil {
			return nil, true, err
		}
		args = append(args, arg)
	}
	return &FuncCall{Name: toks[0].Lit.Ident, Args: args, P: toks[0].Pos}, true, nil
}
