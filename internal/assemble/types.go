// Package assemble drives the two-pass pipeline: pass 1 tokenises the
// source, builds the symbol table, the data image, and a provisional code
// image with symbol-dependent words left zero; pass 2 re-walks the source
// and resolves every symbol-dependent operand against the now-complete
// symbol table.
package assemble

import "maman14asm/internal/word"

// OperandKind tags the operand variant. The symbol table lookup for a
// direct or relative operand happens at resolution time in pass 2, never
// while parsing — so an Operand only ever carries a name, never a pointer
// into the table.
type OperandKind int

const (
	OperandImmediate OperandKind = iota
	OperandDirect
	OperandRelative
	OperandRegister
)

// Operand is the parsed, not-yet-resolved representation of one
// instruction argument.
type Operand struct {
	Kind    OperandKind
	Text    string    // original token, for diagnostics
	Imm     word.Word // OperandImmediate: the truncated s21 value
	Symbol  string    // OperandDirect / OperandRelative: referenced name
	Reg     int       // OperandRegister: 0..7
}

func (o Operand) AddrMode() word.AddrMode {
	switch o.Kind {
	case OperandImmediate:
		return word.AddrImmediate
	case OperandRelative:
		return word.AddrRelative
	case OperandRegister:
		return word.AddrRegister
	default:
		return word.AddrDirect
	}
}
