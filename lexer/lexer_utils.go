/*
File: ctfaw/lexer/lexer_utils.go

Character classification and escape-sequence helpers, split out of
lexer.go the way the teacher keeps scanning helpers (isAlpha, isNumeric,
escapeChar, ...) in a separate lexer_utils.go alongside the main scan loop.
*/
package lexer

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) || c == '_' }

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// escapeByte converts the character following a backslash in a string or
// char literal into its actual byte value (spec §4.1): \\, \", \n, \r,
// \t, \'.
func escapeByte(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}
