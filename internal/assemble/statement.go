package assemble

import (
	"strings"

	"maman14asm/internal/core"
	"maman14asm/internal/diag"
	"maman14asm/internal/ioas"
)

type StatementKind int

const (
	StmtEmpty StatementKind = iota // blank, comment, or label with no statement
	StmtDirective
	StmtInstruction
	StmtUnknownMnemonic
)

// Statement is the result of tokenising one source line, identical
// whichever pass calls it (pass 2 re-tokenises from scratch rather than
// reusing pass 1's result, per spec.md §4.6).
type Statement struct {
	LineNum             int
	Raw                 string
	Label               string
	HasLabel            bool
	LabelEmptyStatement bool // a label with nothing after it: warn, not error
	Key                 string
	Directive           core.Directive
	Instruction         core.Instruction
	Kind                StatementKind
	Args                []string
}

// ParseStatement classifies one line. Comment and blank lines yield
// StmtEmpty with no label.
func ParseStatement(lineNum int, raw string) Statement {
	stmt := Statement{LineNum: lineNum, Raw: raw}

	if ioas.IsCommentLine(raw) {
		return stmt
	}
	toks := ioas.Tokenize(raw)
	if len(toks) == 0 {
		return stmt
	}

	first := toks[0]
	if len(first) > 1 && strings.HasSuffix(first, ":") {
		stmt.Label = first[:len(first)-1]
		stmt.HasLabel = true
		toks = toks[1:]
	}
	if len(toks) == 0 {
		stmt.LabelEmptyStatement = stmt.HasLabel
		return stmt
	}

	stmt.Key = toks[0]
	stmt.Args = toks[1:]

	if strings.HasPrefix(stmt.Key, ".") {
		stmt.Kind = StmtDirective
		stmt.Directive = core.ClassifyDirective(stmt.Key[1:])
		return stmt
	}

	if inst, ok := core.FindInstruction(stmt.Key); ok {
		stmt.Kind = StmtInstruction
		stmt.Instruction = inst
		return stmt
	}

	stmt.Kind = StmtUnknownMnemonic
	return stmt
}

// splitCommaList validates a comma-separated token list (operands, or a
// .data value list): no leading, trailing, or doubled commas, and no two
// bare values back to back. Returns the non-comma items in order. Built
// on ioas.ExpectComma/ExpectEOL, the same typed validators the line/token
// layer exposes for this exact rule.
func splitCommaList(args []string) (items []string, kind diag.Kind, ok bool) {
	toks := args
	if len(toks) == 0 {
		return nil, 0, true
	}
	for {
		if len(toks) == 0 || toks[0] == "," {
			return nil, diag.KindMultipleCommas, false
		}
		items = append(items, toks[0])
		toks = toks[1:]
		if len(toks) == 0 {
			break
		}
		rest, err := ioas.ExpectComma(toks)
		if err != nil {
			return nil, diag.KindMissingComma, false
		}
		toks = rest
		if len(toks) == 0 {
			return nil, diag.KindMultipleCommas, false
		}
	}
	if err := ioas.ExpectEOL(toks); err != nil {
		return nil, diag.KindExtraneousTokens, false
	}
	return items, 0, true
}
