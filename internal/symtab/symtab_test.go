package symtab

import (
	"testing"

	"maman14asm/internal/word"
)

func TestInstallDuplicate(t *testing.T) {
	tab := New()
	if err := tab.Install("X", word.ExtWord(word.AREExternal, 0), true, false, false); err != nil {
		t.Fatalf("first install: %v", err)
	}
	// An .extern symbol later redeclared as a label is still a duplicate —
	// install never upgrades flags.
	err := tab.Install("X", word.ExtWord(word.ARERelocatable, 105), false, false, false)
	if err != ErrDuplicateSymbol {
		t.Fatalf("err = %v, want ErrDuplicateSymbol", err)
	}
}

func TestLookupMissing(t *testing.T) {
	tab := New()
	if _, ok := tab.Lookup("nope"); ok {
		t.Error("found symbol that was never installed")
	}
}

func TestShiftDataAddressesPreservesARE(t *testing.T) {
	tab := New()
	tab.Install("CODE_SYM", word.ExtWord(word.ARERelocatable, 100), false, false, false)
	tab.Install("DATA_SYM", word.ExtWord(word.ARERelocatable, 3), false, false, true)
	tab.Install("EXT_SYM", word.ExtWord(word.AREExternal, 0), true, false, false)

	tab.ShiftDataAddresses(101) // code_size=1, INITIAL_LOAD_ADDR=100

	code, _ := tab.Lookup("CODE_SYM")
	if code.Address() != 100 {
		t.Errorf("non-data symbol shifted: %v", code.Address())
	}
	data, _ := tab.Lookup("DATA_SYM")
	if data.Address() != 104 {
		t.Errorf("data symbol address = %v, want 104", data.Address())
	}
	if word.GetARE(data.Word) != word.ARERelocatable {
		t.Errorf("ARE field mutated by shift: %v", word.GetARE(data.Word))
	}
	ext, _ := tab.Lookup("EXT_SYM")
	if ext.Address() != 0 {
		t.Errorf("external symbol shifted: %v", ext.Address())
	}
}

func TestInDeclarationOrder(t *testing.T) {
	tab := New()
	tab.Install("C", word.ExtWord(word.ARERelocatable, 0), false, false, false)
	tab.Install("A", word.ExtWord(word.ARERelocatable, 0), false, false, false)
	tab.Install("B", word.ExtWord(word.ARERelocatable, 0), false, false, false)

	var names []string
	for _, sym := range tab.InDeclarationOrder() {
		names = append(names, sym.Name)
	}
	want := []string{"C", "A", "B"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("order[%d] = %v, want %v", i, names[i], n)
		}
	}
}

func TestSetEntry(t *testing.T) {
	tab := New()
	tab.Install("L", word.ExtWord(word.ARERelocatable, 101), false, false, true)
	if !tab.SetEntry("L") {
		t.Fatal("SetEntry returned false")
	}
	sym, _ := tab.Lookup("L")
	if !sym.IsEntry {
		t.Error("entry flag not set")
	}
	if tab.SetEntry("missing") {
		t.Error("SetEntry succeeded on missing symbol")
	}
}
