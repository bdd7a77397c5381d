package assemble

import (
	"strings"

	"maman14asm/internal/core"
	"maman14asm/internal/diag"
	"maman14asm/internal/ioas"
	"maman14asm/internal/word"
)

// classifyOperand determines an operand's kind from its first character,
// per spec.md §4.5: '#' → immediate, '&' → relative, r0..r7 → register,
// anything else → direct. malformed reports a parse failure specific to
// the token's own syntax (a bad integer after '#'); it does not check
// symbol-name validity or addressing-mode permission — callers in pass 1
// do that separately so they can name the failure precisely.
func classifyOperand(tok string) (op Operand, malformed bool) {
	switch {
	case strings.HasPrefix(tok, "#"):
		n, err := ioas.ParseIntLiteral(tok[1:])
		if err != nil {
			return Operand{Kind: OperandImmediate, Text: tok}, true
		}
		return Operand{Kind: OperandImmediate, Text: tok, Imm: word.ToS21(n)}, false
	case strings.HasPrefix(tok, "&"):
		return Operand{Kind: OperandRelative, Text: tok, Symbol: tok[1:]}, false
	default:
		if idx, ok := core.ClassifyRegister(tok); ok {
			return Operand{Kind: OperandRegister, Text: tok, Reg: idx}, false
		}
		return Operand{Kind: OperandDirect, Text: tok, Symbol: tok}, false
	}
}

// operandModes returns the permitted addressing-mode set for the operand
// at position index (0-based) of inst, given its arity.
func operandModes(inst core.Instruction, index int) core.AddrModeSet {
	if inst.NumArgs == 2 {
		if index == 0 {
			return inst.SrcModes
		}
		return inst.DstModes
	}
	return inst.DstModes
}

// parseInstructionOperands validates stmt.Args against inst's arity and
// per-slot addressing-mode rules. It is called identically by both
// passes: pass 1 emits diagnostics for what it finds (emitDiag=true);
// pass 2 calls it silently (emitDiag=false) purely to reproduce pass 1's
// word-count decision, so the code-image cursor stays in sync even on a
// line pass 1 already rejected.
func (a *Assembler) parseInstructionOperands(stmt Statement, emitDiag bool) (operands []Operand, ok bool) {
	inst := stmt.Instruction
	items, kind, listOK := splitCommaList(stmt.Args)
	if !listOK {
		if emitDiag {
			a.Sink.Error(stmt.LineNum, kind, stmt.Key)
		}
		return nil, false
	}
	if len(items) != inst.NumArgs {
		if emitDiag {
			a.Sink.Error(stmt.LineNum, diag.KindBadOperandCount, stmt.Key)
		}
		return nil, false
	}

	operands = make([]Operand, inst.NumArgs)
	ok = true
	for i, tok := range items {
		op, malformed := classifyOperand(tok)
		if malformed {
			if emitDiag {
				a.Sink.Error(stmt.LineNum, diag.KindMalformedInteger, tok)
			}
			ok = false
			continue
		}
		if op.Kind == OperandDirect {
			if errKind := core.ValidateSymbolName(op.Symbol); errKind != core.SymOK {
				if emitDiag {
					a.Sink.Error(stmt.LineNum, symbolNameDiagKind(errKind), tok)
				}
				ok = false
				continue
			}
		}
		if !operandModes(inst, i).Has(op.AddrMode()) {
			if emitDiag {
				a.Sink.Error(stmt.LineNum, diag.KindBadAddressingMode, tok)
			}
			ok = false
			continue
		}
		operands[i] = op
	}
	if !ok {
		return nil, false
	}
	return operands, true
}
