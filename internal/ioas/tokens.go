package ioas

import "strings"

// IsCommentLine tests the first raw byte of line against ';', never the
// first non-whitespace byte — so "   ; x" is NOT a comment. Preserved
// deliberately for compatibility (SPEC_FULL.md §9 note 3).
func IsCommentLine(line string) bool {
	return len(line) > 0 && line[0] == ';'
}

// Tokenize splits line on whitespace; a literal comma is always its own
// single-character token even when it abuts other text.
func Tokenize(line string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, c := range line {
		switch {
		case c == ' ' || c == '\t':
			flush()
		case c == ',':
			flush()
			tokens = append(tokens, ",")
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return tokens
}
