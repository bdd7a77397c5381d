// Package core holds the assembler's fixed decision tables: the
// instruction set, the addressing-mode rules per instruction, and the
// classifiers used to recognise registers, directives and symbol names.
// None of it depends on the source being assembled.
package core

import "maman14asm/internal/word"

// ClassifyRegister recognises r0..r7. Anything else, including "r8" or
// "R0", is not a register token.
func ClassifyRegister(tok string) (idx int, ok bool) {
	if len(tok) != 2 || tok[0] != 'r' {
		return 0, false
	}
	d := tok[1]
	if d < '0' || d > '7' {
		return 0, false
	}
	return int(d - '0'), true
}

// Directive is the recognised set of dot-directives, with the leading '.'
// already stripped by the caller.
type Directive int

const (
	DirUnknown Directive = iota
	DirData
	DirString
	DirEntry
	DirExtern
)

func ClassifyDirective(name string) Directive {
	switch name {
	case "data":
		return DirData
	case "string":
		return DirString
	case "entry":
		return DirEntry
	case "extern":
		return DirExtern
	default:
		return DirUnknown
	}
}

// AddrModeSet is a small bitset over the four addressing modes, used to
// describe which modes an operand slot accepts.
type AddrModeSet uint8

func ModeSet(modes ...word.AddrMode) AddrModeSet {
	var s AddrModeSet
	for _, m := range modes {
		s |= 1 << uint(m)
	}
	return s
}

func (s AddrModeSet) Has(m word.AddrMode) bool {
	return s&(1<<uint(m)) != 0
}

// Instruction is the read-only descriptor for one mnemonic.
type Instruction struct {
	Mnemonic string
	Opcode   word.Word
	Funct    word.Word
	NumArgs  int // 0, 1 or 2
	SrcModes AddrModeSet
	DstModes AddrModeSet
}

var instructionTable = buildInstructionTable()

func buildInstructionTable() map[string]Instruction {
	imm := word.AddrImmediate
	dir := word.AddrDirect
	rel := word.AddrRelative
	reg := word.AddrRegister

	rows := []Instruction{
		{Mnemonic: "mov", Opcode: 0, Funct: 0, NumArgs: 2, SrcModes: ModeSet(imm, dir, reg), DstModes: ModeSet(dir, reg)},
		{Mnemonic: "cmp", Opcode: 1, Funct: 0, NumArgs: 2, SrcModes: ModeSet(imm, dir, reg), DstModes: ModeSet(imm, dir, reg)},
		{Mnemonic: "add", Opcode: 2, Funct: 1, NumArgs: 2, SrcModes: ModeSet(imm, dir, reg), DstModes: ModeSet(dir, reg)},
		{Mnemonic: "sub", Opcode: 2, Funct: 2, NumArgs: 2, SrcModes: ModeSet(imm, dir, reg), DstModes: ModeSet(dir, reg)},
		{Mnemonic: "lea", Opcode: 4, Funct: 0, NumArgs: 2, SrcModes: ModeSet(dir), DstModes: ModeSet(dir, reg)},
		{Mnemonic: "clr", Opcode: 5, Funct: 1, NumArgs: 1, DstModes: ModeSet(dir, reg)},
		{Mnemonic: "not", Opcode: 5, Funct: 2, NumArgs: 1, DstModes: ModeSet(dir, reg)},
		{Mnemonic: "inc", Opcode: 5, Funct: 3, NumArgs: 1, DstModes: ModeSet(dir, reg)},
		{Mnemonic: "dec", Opcode: 5, Funct: 4, NumArgs: 1, DstModes: ModeSet(dir, reg)},
		{Mnemonic: "jmp", Opcode: 9, Funct: 1, NumArgs: 1, DstModes: ModeSet(dir, rel)},
		{Mnemonic: "bne", Opcode: 9, Funct: 2, NumArgs: 1, DstModes: ModeSet(dir, rel)},
		{Mnemonic: "jsr", Opcode: 9, Funct: 3, NumArgs: 1, DstModes: ModeSet(dir, rel)},
		{Mnemonic: "red", Opcode: 12, Funct: 0, NumArgs: 1, DstModes: ModeSet(dir, reg)},
		{Mnemonic: "prn", Opcode: 13, Funct: 0, NumArgs: 1, DstModes: ModeSet(imm, dir, reg)},
		{Mnemonic: "rts", Opcode: 14, Funct: 0, NumArgs: 0},
		{Mnemonic: "stop", Opcode: 15, Funct: 0, NumArgs: 0},
	}
	m := make(map[string]Instruction, len(rows))
	for _, row := range rows {
		m[row.Mnemonic] = row
	}
	return m
}

func FindInstruction(mnemonic string) (Instruction, bool) {
	inst, ok := instructionTable[mnemonic]
	return inst, ok
}

// ReservedWords is the union of every mnemonic, directive name and register
// name — a symbol may collide with none of them.
func ReservedWords() map[string]bool {
	words := make(map[string]bool)
	for name := range instructionTable {
		words[name] = true
	}
	for _, d := range []string{"data", "string", "entry", "extern"} {
		words[d] = true
	}
	for i := 0; i <= 7; i++ {
		words["r"+string(rune('0'+i))] = true
	}
	return words
}

// SymbolNameError enumerates why ValidateSymbolName rejected a name,
// matching the original implementation's per-cause granularity rather than
// one catch-all "invalid symbol" error.
type SymbolNameError int

const (
	SymOK SymbolNameError = iota
	SymEmpty
	SymNotAlphaStart
	SymNotAlnumRest
	SymTooLong
	SymReserved
)

const MaxSymbolNameLen = 31

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

func ValidateSymbolName(name string) SymbolNameError {
	if len(name) == 0 {
		return SymEmpty
	}
	if !isAlpha(name[0]) {
		return SymNotAlphaStart
	}
	for i := 1; i < len(name); i++ {
		if !isAlnum(name[i]) {
			return SymNotAlnumRest
		}
	}
	if len(name) > MaxSymbolNameLen {
		return SymTooLong
	}
	if ReservedWords()[name] {
		return SymReserved
	}
	return SymOK
}
