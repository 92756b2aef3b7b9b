/*
File    : ctfaw/parser/parser_helpers.go

Shared token-slice helpers used by both the expression parser and the
statement/top-level parser: paren/brace matching and top-level-comma
splitting, all depth-tracked over a lexer.Token slice.
*/
package parser

import "github.com/unmappedstack/ctfaw/lexer"

// matchingClose returns the index within toks of the close token that
// matches the open token at toks[openIdx], or -1 if unbalanced.
func matchingClose(toks []lexer.Token, openIdx int, open, close lexer.Kind) int {
	depth := 0
	for i := openIdx; i < len(toks); i++ {
		switch toks[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevelCommas splits toks on ',' tokens at paren depth 0.
func splitTopLevelCommas(toks []lexer.Token) [][]lexer.Token {
	if len(toks) == 0 {
		return nil
	}
	var parts [][]lexer.Token
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.Kind {
		case lexer.KindLparen:
			depth++
		case lexer.KindRparen:
			depth--
		case lexer.KindComma:
			if depth == 0 {
				parts = append(parts, toks[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, toks[start:])
	return parts
}
