// Package ioas is the assembler's line-oriented reader and tokeniser: an
// 80-column line cap, whitespace/comma tokenisation, and the typed
// validators (comma, EOL, integer literal, string literal) the two passes
// share.
package ioas

import (
	"bufio"
	"io"
)

const MaxLineLen = 80

type LineStatus int

const (
	LineOK LineStatus = iota
	LineEOF
	LineTooLong
)

// LineReader reads newline-terminated records from an underlying reader,
// enforcing the 80-character cap (excluding the terminator) and
// discarding the remainder of an overlong line up to the next '\n'.
type LineReader struct {
	r       *bufio.Reader
	lineNum int
}

// NewLineReader wraps r with a size hint for the internal buffer, sized by
// sizeHint (see sizehint_unix.go / sizehint_other.go) when the source is a
// regular file.
func NewLineReader(r io.Reader, sizeHint int) *LineReader {
	bufSize := 4096
	if sizeHint > bufSize {
		bufSize = sizeHint
	}
	return &LineReader{r: bufio.NewReaderSize(r, bufSize)}
}

// Next returns the next line (without its terminator) and a status. On
// LineTooLong, line holds the first MaxLineLen characters and the rest of
// the physical line has already been discarded.
func (lr *LineReader) Next() (line string, status LineStatus) {
	raw, err := lr.r.ReadString('\n')
	if len(raw) == 0 && err != nil {
		return "", LineEOF
	}
	lr.lineNum++

	trimmed := raw
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\n' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\r' {
		trimmed = trimmed[:len(trimmed)-1]
	}

	if len(trimmed) > MaxLineLen {
		if !endsInNewline(raw) {
			lr.discardRestOfLine()
		}
		return trimmed[:MaxLineLen], LineTooLong
	}
	return trimmed, LineOK
}

func endsInNewline(raw string) bool {
	return len(raw) > 0 && raw[len(raw)-1] == '\n'
}

func (lr *LineReader) discardRestOfLine() {
	for {
		b, err := lr.r.ReadByte()
		if err != nil || b == '\n' {
			return
		}
	}
}

// LineNum is the 1-based number of the line most recently returned.
func (lr *LineReader) LineNum() int {
	return lr.lineNum
}
