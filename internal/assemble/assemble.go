package assemble

import (
	"io"
	"os"

	"maman14asm/internal/diag"
	"maman14asm/internal/ioas"
	"maman14asm/internal/symtab"
	"maman14asm/internal/word"
)

// SourceLine is one physical line of source, already cut to size by the
// line reader.
type SourceLine struct {
	Num  int
	Text string
}

// ReadSource buffers every line of r through an ioas.LineReader, reporting
// KindLineTooLong for any overlong line and excluding it from the
// returned slice — spec.md §4.4/§6: the line is reported and skipped, not
// truncated-and-kept. When r is a regular file, its size is used to
// pre-size the line reader's buffer (see ioas.SizeHint).
func ReadSource(r io.Reader, sink *diag.Sink) []SourceLine {
	sizeHint := 0
	if f, ok := r.(*os.File); ok {
		sizeHint = ioas.SizeHint(f)
	}
	lr := ioas.NewLineReader(r, sizeHint)
	var lines []SourceLine
	for {
		text, status := lr.Next()
		switch status {
		case ioas.LineEOF:
			return lines
		case ioas.LineTooLong:
			sink.Error(lr.LineNum(), diag.KindLineTooLong, "")
		case ioas.LineOK:
			lines = append(lines, SourceLine{Num: lr.LineNum(), Text: text})
		}
	}
}

// Assembler holds the mutable state threaded through both passes for one
// input file.
type Assembler struct {
	Sink    *diag.Sink
	Symtab  *symtab.Table
	Code    word.Image
	Data    word.Image
	Externs word.ExternRefs
}

func NewAssembler(sink *diag.Sink) *Assembler {
	return &Assembler{Sink: sink, Symtab: symtab.New()}
}

// Assemble runs pass 1, the inter-pass data-address shift, and pass 2 over
// lines, and reports whether the file assembled cleanly.
func (a *Assembler) Assemble(lines []SourceLine) bool {
	a.runFirstPass(lines)
	a.Symtab.ShiftDataAddresses(word.Word(a.Code.Len() + word.InitialLoadAddr))
	a.runSecondPass(lines)
	return !a.Sink.HasErrors()
}
