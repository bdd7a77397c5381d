// Package symtab implements the assembler's symbol table: name to
// (replacement word, flags) with duplicate detection, lookup, and the
// inter-pass bulk shift of data-symbol addresses.
//
// The source implementation backs this with a fixed-size hash table with
// chaining; a Go map gives the same expected-constant-time lookup, but map
// iteration order is unspecified, so declaration order is tracked
// separately (see SPEC_FULL.md §4.3) for deterministic .ent emission.
package symtab

import (
	"errors"

	"maman14asm/internal/word"
)

var ErrDuplicateSymbol = errors.New("duplicate symbol")

// Symbol is a named address: the replacement word (ARE tag + final
// address) plus the three membership flags.
type Symbol struct {
	Name      string
	Word      word.Word
	IsExtern  bool
	IsEntry   bool
	IsData    bool
	declOrder int
}

func (s *Symbol) Address() word.Word {
	return word.Payload21(s.Word)
}

// Table maps symbol names to Symbol records.
type Table struct {
	byName map[string]*Symbol
	order  []*Symbol
}

func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Install adds a new symbol. It fails with ErrDuplicateSymbol if a symbol
// with that name already exists, regardless of either symbol's flags —
// an .extern install later redeclared as a label is a duplicate, not an
// upgrade (SPEC_FULL.md §9 open question 1).
func (t *Table) Install(name string, w word.Word, isExtern, isEntry, isData bool) error {
	if _, exists := t.byName[name]; exists {
		return ErrDuplicateSymbol
	}
	sym := &Symbol{
		Name:      name,
		Word:      w,
		IsExtern:  isExtern,
		IsEntry:   isEntry,
		IsData:    isData,
		declOrder: len(t.order),
	}
	t.byName[name] = sym
	t.order = append(t.order, sym)
	return nil
}

func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// SetEntry flips a symbol's entry flag on; called from pass 2 once a
// .entry directive is validated.
func (t *Table) SetEntry(name string) bool {
	sym, ok := t.byName[name]
	if !ok {
		return false
	}
	sym.IsEntry = true
	return true
}

// ShiftDataAddresses adds delta to the address (non-ARE payload) of every
// symbol flagged IsData, preserving its ARE field.
func (t *Table) ShiftDataAddresses(delta word.Word) {
	for _, sym := range t.order {
		if !sym.IsData {
			continue
		}
		are := word.GetARE(sym.Word)
		newAddr := sym.Address() + delta
		sym.Word = word.ExtWord(are, newAddr)
	}
}

// InDeclarationOrder returns every installed symbol in source-declaration
// order, for deterministic .ent emission.
func (t *Table) InDeclarationOrder() []*Symbol {
	return t.order
}
