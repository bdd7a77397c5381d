package assemble

import (
	"bytes"
	"strings"
	"testing"

	"maman14asm/internal/diag"
	"maman14asm/internal/emit"
	"maman14asm/internal/word"
)

func runSource(t *testing.T, src string) (*Assembler, bool) {
	t.Helper()
	sink := diag.NewSink()
	sink.SetCurrentFile("test.as")
	lines := ReadSource(strings.NewReader(src), sink)
	a := NewAssembler(sink)
	ok := a.Assemble(lines)
	if !ok {
		for _, d := range sink.Diagnostics() {
			t.Logf("diag: %s", d.String())
		}
	}
	return a, ok
}

func objectBytes(t *testing.T, a *Assembler) string {
	t.Helper()
	var buf bytes.Buffer
	if err := emit.WriteObject(&buf, &a.Code, &a.Data); err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	return buf.String()
}

// S1 — minimal: stop on line 1.
func TestScenarioS1Minimal(t *testing.T) {
	a, ok := runSource(t, "stop\n")
	if !ok {
		t.Fatal("assembly failed")
	}
	if a.Code.Len() != 1 || a.Data.Len() != 0 {
		t.Fatalf("code=%d data=%d", a.Code.Len(), a.Data.Len())
	}
	got := objectBytes(t, a)
	want := "1 0\n0000100 3c0004"
	if got != want {
		t.Errorf("object = %q, want %q", got, want)
	}
	if a.Externs.Len() != 0 {
		t.Error("unexpected externs")
	}
	if emit.HasEntries(a.Symtab) {
		t.Error("unexpected entries")
	}
}

// S2 — external direct reference.
func TestScenarioS2ExternalDirect(t *testing.T) {
	a, ok := runSource(t, ".extern X\njmp X\n")
	if !ok {
		t.Fatal("assembly failed")
	}
	if a.Code.Len() != 2 {
		t.Fatalf("code len = %d, want 2", a.Code.Len())
	}
	if word.GetARE(a.Code.At(1)) != word.AREExternal {
		t.Errorf("replacement word ARE = %v, want External", word.GetARE(a.Code.At(1)))
	}
	if word.Payload21(a.Code.At(1)) != 0 {
		t.Errorf("replacement word payload = %v, want 0", word.Payload21(a.Code.At(1)))
	}
	if a.Externs.Len() != 1 {
		t.Fatalf("externs len = %d, want 1", a.Externs.Len())
	}
	ref := a.Externs.All()[0]
	if ref.Name != "X" || ref.Address != 101 {
		t.Errorf("extern ref = %+v, want X@101", ref)
	}
}

// S3 — entry and data.
func TestScenarioS3EntryAndData(t *testing.T) {
	a, ok := runSource(t, ".entry L\nL: .data 5, -1\nstop\n")
	if !ok {
		t.Fatal("assembly failed")
	}
	if a.Code.Len() != 1 || a.Data.Len() != 2 {
		t.Fatalf("code=%d data=%d", a.Code.Len(), a.Data.Len())
	}
	if word.FormatWordHex(a.Data.At(0)) != "000005" {
		t.Errorf("data[0] = %s", word.FormatWordHex(a.Data.At(0)))
	}
	if word.FormatWordHex(a.Data.At(1)) != "ffffff" {
		t.Errorf("data[1] = %s", word.FormatWordHex(a.Data.At(1)))
	}
	sym, found := a.Symtab.Lookup("L")
	if !found || !sym.IsEntry || sym.Address() != 101 {
		t.Fatalf("L = %+v, found=%v", sym, found)
	}
}

// S4 — relative addressing.
func TestScenarioS4Relative(t *testing.T) {
	a, ok := runSource(t, "HERE: jmp &HERE\nstop\n")
	if !ok {
		t.Fatal("assembly failed")
	}
	relWord := a.Code.At(1)
	if word.GetARE(relWord) != word.AREAbsolute {
		t.Errorf("relative word ARE = %v, want Absolute", word.GetARE(relWord))
	}
	if got := word.Payload21(relWord); got != word.ToS21(0) {
		t.Errorf("relative offset = %v, want 0", got)
	}
}

// S5 — two-operand mov with registers, no extension words.
func TestScenarioS5RegisterOperands(t *testing.T) {
	a, ok := runSource(t, "mov r3, r5\n")
	if !ok {
		t.Fatal("assembly failed")
	}
	if a.Code.Len() != 1 {
		t.Fatalf("code len = %d, want 1", a.Code.Len())
	}
	w := a.Code.At(0)
	if word.GetField(w, word.FieldOpcode) != 0 || word.GetField(w, word.FieldFunct) != 0 {
		t.Errorf("opcode/funct wrong: %06x", uint32(w)&0xffffff)
	}
	if word.GetField(w, word.FieldSrcAddr) != word.Word(word.AddrRegister) || word.GetField(w, word.FieldSrcReg) != 3 {
		t.Errorf("src fields wrong: %06x", uint32(w)&0xffffff)
	}
	if word.GetField(w, word.FieldDestAddr) != word.Word(word.AddrRegister) || word.GetField(w, word.FieldDestReg) != 5 {
		t.Errorf("dst fields wrong: %06x", uint32(w)&0xffffff)
	}
}

// S6 — string directive.
func TestScenarioS6String(t *testing.T) {
	a, ok := runSource(t, `S: .string "Hi"`+"\n")
	if !ok {
		t.Fatal("assembly failed")
	}
	if a.Data.Len() != 3 {
		t.Fatalf("data len = %d, want 3", a.Data.Len())
	}
	if a.Data.At(0) != word.Word('H') || a.Data.At(1) != word.Word('i') || a.Data.At(2) != 0 {
		t.Errorf("data = %v", a.Data.All())
	}
	sym, found := a.Symtab.Lookup("S")
	if !found || sym.Address() != 100 {
		t.Fatalf("S = %+v, found=%v", sym, found)
	}
}

func TestDuplicateSymbolSuppressesOutput(t *testing.T) {
	_, ok := runSource(t, "A: stop\nA: stop\n")
	if ok {
		t.Fatal("expected assembly to fail on duplicate symbol")
	}
}

func TestUnknownSymbolSuppressesOutput(t *testing.T) {
	_, ok := runSource(t, "jmp NOPE\n")
	if ok {
		t.Fatal("expected assembly to fail on unknown symbol")
	}
}

// A label is installed before its instruction's operands are validated,
// even when the operands turn out to be invalid — matching spec.md §4.5
// point 4. Redeclaring that label elsewhere is still a duplicate-symbol
// error, not a clean second install.
func TestLabelInstalledBeforeBadOperandsRejected(t *testing.T) {
	a, ok := runSource(t, "BAD: mov #5\nBAD: stop\n")
	if ok {
		t.Fatal("expected assembly to fail")
	}
	found := false
	for _, d := range a.Sink.Diagnostics() {
		if d.Kind == diag.KindDuplicateSymbol && d.Line == 2 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a KindDuplicateSymbol diagnostic on line 2")
	}
}

// .extern and .entry each take exactly one symbol name; a second token is
// an extraneous-tokens error, distinct from the zero-token bad-operand-count
// case (spec.md §7).
func TestExternExtraneousTokensReported(t *testing.T) {
	sink := diag.NewSink()
	sink.SetCurrentFile("test.as")
	lines := ReadSource(strings.NewReader(".extern A B\nstop\n"), sink)
	a := NewAssembler(sink)
	if a.Assemble(lines) {
		t.Fatal("expected assembly to fail")
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind == diag.KindExtraneousTokens {
			found = true
		}
		if d.Kind == diag.KindBadOperandCount {
			t.Fatalf("extra token after symbol name should not report KindBadOperandCount: %s", d.String())
		}
	}
	if !found {
		t.Fatal("expected a KindExtraneousTokens diagnostic")
	}
}

func TestExternMissingNameReported(t *testing.T) {
	sink := diag.NewSink()
	sink.SetCurrentFile("test.as")
	lines := ReadSource(strings.NewReader(".extern\nstop\n"), sink)
	a := NewAssembler(sink)
	if a.Assemble(lines) {
		t.Fatal("expected assembly to fail")
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind == diag.KindBadOperandCount {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a KindBadOperandCount diagnostic")
	}
}

func TestLineTooLongReported(t *testing.T) {
	sink := diag.NewSink()
	sink.SetCurrentFile("t.as")
	lines := ReadSource(strings.NewReader(strings.Repeat("a", 81)+"\n"), sink)
	if len(lines) != 0 {
		t.Errorf("expected overlong line to be excluded, got %d lines", len(lines))
	}
	if !sink.HasErrors() {
		t.Error("expected a too_long diagnostic")
	}
}
