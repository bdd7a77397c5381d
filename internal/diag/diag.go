// Package diag is the assembler's diagnostic sink: it collects the
// per-line errors and warnings produced while assembling one file, and
// knows how to format them and a verbose symbol-table dump for a human
// operator.
//
// The sink is an explicit struct instance threaded through the pipeline
// rather than a package-level global (SPEC_FULL.md §5 resolves the
// original's sticky global file name this way): SetCurrentFile /
// ClearCurrentFile are called at the driver's per-file boundary.
package diag

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
)

// Kind distinguishes diagnostic causes at the original implementation's
// granularity (its indicators.h enumerates these separately rather than
// collapsing them into "bad symbol" / "bad operand").
type Kind int

const (
	KindDuplicateSymbol Kind = iota
	KindUnknownMnemonic
	KindUnknownDirective
	KindUnknownSymbol
	KindBadAddressingMode
	KindMalformedInteger
	KindMalformedString
	KindSymbolEmpty
	KindSymbolNotAlphaStart
	KindSymbolNotAlnumRest
	KindSymbolTooLong
	KindSymbolReserved
	KindLineTooLong
	KindExtraneousTokens
	KindMissingComma
	KindMultipleCommas
	KindExternRelative
	KindEntryOfExternal
	KindBadOperandCount
	KindWarnLabelOnExtern
	KindWarnLabelOnEntry
	KindWarnLabelEmptyStatement
)

var kindNames = map[Kind]string{
	KindDuplicateSymbol:         "duplicate symbol",
	KindUnknownMnemonic:         "unknown instruction",
	KindUnknownDirective:        "unknown directive",
	KindUnknownSymbol:           "unknown symbol",
	KindBadAddressingMode:       "addressing mode not permitted here",
	KindMalformedInteger:        "malformed integer literal",
	KindMalformedString:         "malformed string literal",
	KindSymbolEmpty:             "symbol name is empty",
	KindSymbolNotAlphaStart:     "symbol name does not start with a letter",
	KindSymbolNotAlnumRest:      "symbol name contains a non-alphanumeric character",
	KindSymbolTooLong:           "symbol name exceeds 31 characters",
	KindSymbolReserved:          "symbol name collides with a reserved word",
	KindLineTooLong:             "line exceeds 80 characters",
	KindExtraneousTokens:        "extraneous tokens at end of line",
	KindMissingComma:            "missing comma between operands",
	KindMultipleCommas:          "multiple consecutive commas",
	KindExternRelative:          "relative addressing used with an external symbol",
	KindEntryOfExternal:         "symbol declared both external and entry",
	KindBadOperandCount:         "wrong number of operands for instruction",
	KindWarnLabelOnExtern:       "label on .extern statement is ignored",
	KindWarnLabelOnEntry:        "label on .entry statement is ignored",
	KindWarnLabelEmptyStatement: "label with no statement",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "diagnostic"
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one reported assembly error or warning.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	File     string
	Line     int
	Message  string
	Token    string
}

func (d Diagnostic) String() string {
	tag := "error"
	if d.Severity == SeverityWarning {
		tag = "warning"
	}
	msg := d.Kind.String()
	if d.Message != "" {
		msg = d.Message
	}
	if d.Token != "" {
		return fmt.Sprintf("%s:%d: %s: %s (%q)", d.File, d.Line, tag, msg, d.Token)
	}
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, tag, msg)
}

// Sink accumulates diagnostics for the file currently being assembled.
type Sink struct {
	currentFile string
	diags       []Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

// SetCurrentFile / ClearCurrentFile mark the driver's per-file boundary;
// Error and Warn stamp every record with the name set here.
func (s *Sink) SetCurrentFile(name string) {
	s.currentFile = name
	s.diags = nil
}

func (s *Sink) ClearCurrentFile() {
	s.currentFile = ""
}

func (s *Sink) Error(line int, kind Kind, token string) {
	s.diags = append(s.diags, Diagnostic{
		Severity: SeverityError, Kind: kind, File: s.currentFile, Line: line, Token: token,
	})
}

func (s *Sink) Errorf(line int, kind Kind, token, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Severity: SeverityError, Kind: kind, File: s.currentFile, Line: line,
		Message: fmt.Sprintf(format, args...), Token: token,
	})
}

func (s *Sink) Warn(line int, kind Kind, token string) {
	s.diags = append(s.diags, Diagnostic{
		Severity: SeverityWarning, Kind: kind, File: s.currentFile, Line: line, Token: token,
	})
}

func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Emit writes every collected diagnostic to w, one per line, in the order
// they were recorded.
func (s *Sink) Emit(w io.Writer) {
	for _, d := range s.diags {
		fmt.Fprintln(w, d.String())
	}
}

// DumpState pretty-prints an arbitrary piece of assembler state (the
// symbol table, a parsed operand, …) through pp, for the -v verbose flag
// and for tests that want a readable failure dump — grounded on the
// teacher's pp.Println(obj) pattern in debug/objdump.go.
func DumpState(w io.Writer, label string, v any) {
	fmt.Fprintf(w, "%s:\n", label)
	pp.Fprintln(w, v)
}
