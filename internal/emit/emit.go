// Package emit formats and writes the three output artifacts: the object
// file (code + data images), the externals file, and the entries file.
package emit

import (
	"bufio"
	"fmt"
	"io"

	"maman14asm/internal/symtab"
	"maman14asm/internal/word"
)

// WriteObject writes the object-file format: a header line "code_size
// data_size", then the code words, a blank separator line, then the data
// words — each payload line a 7-digit address and a 6-digit lowercase hex
// word. No trailing newline after the last line.
func WriteObject(w io.Writer, code, data *word.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", code.Len(), data.Len())

	addr := word.InitialLoadAddr
	for i := 0; i < code.Len(); i++ {
		fmt.Fprintf(bw, "%s %s", word.FormatAddressDecimal(addr), word.FormatWordHex(code.At(i)))
		addr++
		if i != code.Len()-1 || data.Len() > 0 {
			fmt.Fprintln(bw)
		}
	}
	if data.Len() > 0 {
		fmt.Fprintln(bw)
		for i := 0; i < data.Len(); i++ {
			fmt.Fprintf(bw, "%s %s", word.FormatAddressDecimal(addr), word.FormatWordHex(data.At(i)))
			addr++
			if i != data.Len()-1 {
				fmt.Fprintln(bw)
			}
		}
	}
	return bw.Flush()
}

// WriteExternals writes one "name address" line per recorded external
// reference, in source-appearance order. Callers only invoke this when
// refs.Len() > 0.
func WriteExternals(w io.Writer, refs *word.ExternRefs) error {
	bw := bufio.NewWriter(w)
	all := refs.All()
	for i, ref := range all {
		fmt.Fprintf(bw, "%s %s", ref.Name, word.FormatAddressDecimal(ref.Address))
		if i != len(all)-1 {
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}

// WriteEntries writes one "name address" line per entry-flagged symbol,
// in source-declaration order. Callers only invoke this when at least one
// entry symbol exists.
func WriteEntries(w io.Writer, tab *symtab.Table) error {
	bw := bufio.NewWriter(w)
	var entries []*symtab.Symbol
	for _, sym := range tab.InDeclarationOrder() {
		if sym.IsEntry {
			entries = append(entries, sym)
		}
	}
	for i, sym := range entries {
		fmt.Fprintf(bw, "%s %s", sym.Name, word.FormatAddressDecimal(int(sym.Address())))
		if i != len(entries)-1 {
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}

// HasEntries reports whether tab has at least one entry-flagged symbol,
// so the driver knows whether to create the .ent file at all.
func HasEntries(tab *symtab.Table) bool {
	for _, sym := range tab.InDeclarationOrder() {
		if sym.IsEntry {
			return true
		}
	}
	return false
}
