package ioas

import (
	"strings"
	"testing"
)

func TestLineReaderBoundary(t *testing.T) {
	line80 := strings.Repeat("a", 80)
	line81 := strings.Repeat("a", 81)
	input := line80 + "\n" + line81 + "\nshort\n"
	lr := NewLineReader(strings.NewReader(input), 0)

	got, status := lr.Next()
	if status != LineOK || got != line80 {
		t.Fatalf("line1: got=%q status=%v", got, status)
	}
	got, status = lr.Next()
	if status != LineTooLong || len(got) != MaxLineLen {
		t.Fatalf("line2: got len=%d status=%v", len(got), status)
	}
	got, status = lr.Next()
	if status != LineOK || got != "short" {
		t.Fatalf("line3: got=%q status=%v", got, status)
	}
	_, status = lr.Next()
	if status != LineEOF {
		t.Fatalf("expected EOF, got %v", status)
	}
}

func TestIsCommentLineFirstByteOnly(t *testing.T) {
	if !IsCommentLine(";comment") {
		t.Error("leading ; should be a comment")
	}
	if IsCommentLine("   ; x") {
		t.Error("leading whitespace before ; must NOT be treated as a comment")
	}
}

func TestTokenizeCommaIsOwnToken(t *testing.T) {
	got := Tokenize("mov r3,r5")
	want := []string{"mov", "r3", ",", "r5"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tok[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseIntLiteral(t *testing.T) {
	cases := map[string]int64{"5": 5, "+5": 5, "-1": -1, "0": 0}
	for in, want := range cases {
		got, err := ParseIntLiteral(in)
		if err != nil || got != want {
			t.Errorf("ParseIntLiteral(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "+", "-", "1.5", "1-2", "abc"} {
		if _, err := ParseIntLiteral(bad); err == nil {
			t.Errorf("ParseIntLiteral(%q) accepted", bad)
		}
	}
}

func TestParseStringLiteral(t *testing.T) {
	got, err := ParseStringLiteral(`"Hi"`)
	if err != nil || got != "Hi" {
		t.Fatalf("got %q, %v", got, err)
	}
	for _, bad := range []string{`Hi"`, `"Hi`, `""`[:0], `"`} {
		if _, err := ParseStringLiteral(bad); err == nil {
			t.Errorf("ParseStringLiteral(%q) accepted", bad)
		}
	}
	if got, err := ParseStringLiteral(`""`); err != nil || got != "" {
		t.Errorf("empty string payload: got %q, %v", got, err)
	}
}
